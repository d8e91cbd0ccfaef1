package httpx

import "net/http"

// The frontend reads these headers to flash translated alerts; the values
// are i18n message keys, the params header carries the interpolated id.
const (
	applicationName = "bookmanagerrmh2App"

	HeaderAlert  = "X-" + applicationName + "-alert"
	HeaderParams = "X-" + applicationName + "-params"
	HeaderError  = "X-" + applicationName + "-error"
)

func setAlert(h http.Header, message, param string) {
	h.Set(HeaderAlert, message)
	h.Set(HeaderParams, param)
}

// SetEntityCreationAlert marks a successful create of entityName with id.
func SetEntityCreationAlert(h http.Header, entityName, id string) {
	setAlert(h, applicationName+"."+entityName+".created", id)
}

// SetEntityUpdateAlert marks a successful update of entityName with id.
func SetEntityUpdateAlert(h http.Header, entityName, id string) {
	setAlert(h, applicationName+"."+entityName+".updated", id)
}

// SetEntityDeletionAlert marks a successful delete of entityName with id.
func SetEntityDeletionAlert(h http.Header, entityName, id string) {
	setAlert(h, applicationName+"."+entityName+".deleted", id)
}

// SetErrorHeaders marks a failed entity operation with its error key.
func SetErrorHeaders(h http.Header, entityName, errorKey string) {
	h.Set(HeaderError, "error."+errorKey)
	h.Set(HeaderParams, entityName)
}
