package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// HeaderTotalCount exposes the unpaged result size to clients.
const HeaderTotalCount = "X-Total-Count"

// WritePaginationHeaders sets X-Total-Count plus a Link header with next,
// prev, last and first page links. Query parameters other than page and
// size (such as sort) are preserved in the links.
func WritePaginationHeaders(w http.ResponseWriter, r *http.Request, p paging.PageRequest, total int64) {
	w.Header().Set(HeaderTotalCount, strconv.FormatInt(total, 10))

	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	links := make([]string, 0, 4)
	add := func(page int, rel string) {
		links = append(links, pageLink(r, page, p.Size, rel))
	}
	if p.Page < totalPages-1 {
		add(p.Page+1, "next")
	}
	if p.Page > 0 {
		add(p.Page-1, "prev")
	}
	last := totalPages - 1
	if last < 0 {
		last = 0
	}
	add(last, "last")
	add(0, "first")
	w.Header().Set("Link", strings.Join(links, ","))
}

func pageLink(r *http.Request, page, size int, rel string) string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=%q", u.RequestURI(), rel)
}
