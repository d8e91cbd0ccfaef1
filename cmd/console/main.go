// Command console is an interactive client for a running server. It
// speaks the same REST API the admin UI does, one entity at a time.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/peterh/liner"

	"github.com/PabloGitu/bookmanagerrmh2/internal/nav"
)

const historyName = ".bookmanagerrmh2_history"

type console struct {
	base   string
	client *http.Client
	line   *liner.State

	entity string
	paths  map[string]string
	order  []string
	token  string
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "Base URL of a running server")
	flag.Parse()

	c := &console{
		base:   strings.TrimRight(*addr, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
		entity: "book",
		paths:  map[string]string{},
	}
	if err := c.loadEntities(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot reach %s: %v\n", c.base, err)
		os.Exit(1)
	}

	c.line = liner.NewLiner()
	defer c.line.Close()
	c.line.SetCtrlCAborts(true)
	c.line.SetCompleter(c.complete)

	historyPath := historyFile()
	if f, err := os.Open(historyPath); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = c.line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("connected to %s (type help for commands)\n", c.base)
	for {
		input, err := c.line.Prompt(c.entity + "> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		c.line.AppendHistory(input)
		if !c.dispatch(input) {
			return
		}
	}
}

func (c *console) dispatch(input string) bool {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		c.printHelp()
	case "entities":
		for _, name := range c.order {
			marker := "  "
			if name == c.entity {
				marker = "* "
			}
			fmt.Printf("%s%-10s %s\n", marker, name, c.paths[name])
		}
	case "use":
		if len(args) != 1 {
			fmt.Println("usage: use <entity>")
			break
		}
		if _, ok := c.paths[args[0]]; !ok {
			fmt.Printf("unknown entity %q (try entities)\n", args[0])
			break
		}
		c.entity = args[0]
	case "list":
		page := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				fmt.Println("usage: list [page]")
				break
			}
			page = n
		}
		c.list(page)
	case "get":
		if len(args) != 1 {
			fmt.Println("usage: get <id>")
			break
		}
		c.get(args[0])
	case "delete":
		if len(args) != 1 {
			fmt.Println("usage: delete <id>")
			break
		}
		c.del(args[0])
	case "login":
		if len(args) != 1 {
			fmt.Println("usage: login <username>")
			break
		}
		c.login(args[0])
	default:
		fmt.Printf("unknown command %q (try help)\n", cmd)
	}
	return true
}

func (c *console) printHelp() {
	fmt.Print(`commands:
  use <entity>    switch the current entity
  list [page]     list a page of the current entity
  get <id>        fetch one record
  delete <id>     delete one record
  entities        show the entities menu
  login <user>    authenticate against a secured server
  exit            leave
`)
}

// loadEntities builds the entity table from the server's menu. A secured
// server answers 401 here, so fall back to the built-in table and let
// the user login first.
func (c *console) loadEntities() error {
	resp, err := c.client.Get(c.base + "/api/entities")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		for _, e := range nav.Default() {
			c.paths[e.Name] = e.APIPath
			c.order = append(c.order, e.Name)
		}
		fmt.Println("server requires a login; run: login <username>")
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/entities: %s", resp.Status)
	}

	var entries []struct {
		Name    string `json:"name"`
		APIPath string `json:"apiPath"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return err
	}
	for _, e := range entries {
		c.paths[e.Name] = e.APIPath
		c.order = append(c.order, e.Name)
	}
	return nil
}

func (c *console) list(page int) {
	path := fmt.Sprintf("%s?page=%d&size=20&sort=id,asc", c.paths[c.entity], page)
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.printProblem(resp)
		return
	}

	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		fmt.Printf("decoding response: %v\n", err)
		return
	}
	for _, row := range rows {
		fmt.Printf("%6v  %s\n", row["id"], rowLabel(row))
	}
	if total, err := strconv.ParseInt(resp.Header.Get("X-Total-Count"), 10, 64); err == nil {
		fmt.Printf("showing %s of %s (page %d)\n",
			humanize.Comma(int64(len(rows))), humanize.Comma(total), page)
	}
}

// rowLabel picks the human-readable column of whatever entity came back.
func rowLabel(row map[string]any) string {
	for _, key := range []string{"title", "name", "text"} {
		if v, ok := row[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func (c *console) get(id string) {
	resp, err := c.do(http.MethodGet, c.paths[c.entity]+"/"+id, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.printProblem(resp)
		return
	}

	var row map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&row); err != nil {
		fmt.Printf("decoding response: %v\n", err)
		return
	}
	pretty, _ := json.MarshalIndent(row, "", "  ")
	fmt.Println(string(pretty))
}

func (c *console) del(id string) {
	resp, err := c.do(http.MethodDelete, c.paths[c.entity]+"/"+id, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.printProblem(resp)
		return
	}
	fmt.Printf("deleted %s %s\n", c.entity, id)
}

func (c *console) login(username string) {
	password, err := c.line.PasswordPrompt("password: ")
	if err != nil {
		fmt.Println()
		return
	}

	body, _ := json.Marshal(map[string]any{
		"username":   username,
		"password":   password,
		"rememberMe": true,
	})
	resp, err := c.do(http.MethodPost, "/api/authenticate", bytes.NewReader(body))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.printProblem(resp)
		return
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out["id_token"] == "" {
		fmt.Println("server did not return a token")
		return
	}
	c.token = out["id_token"]
	fmt.Printf("logged in as %s\n", username)
}

func (c *console) do(method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.client.Do(req)
}

func (c *console) printProblem(resp *http.Response) {
	var p struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&p)
	if p.Title != "" {
		fmt.Printf("%s: %s\n", resp.Status, p.Title)
	} else {
		fmt.Println(resp.Status)
	}
}

func (c *console) complete(line string) []string {
	var out []string
	for _, cmd := range []string{"use ", "list", "get ", "delete ", "entities", "login ", "help", "exit", "quit"} {
		if strings.HasPrefix(cmd, line) {
			out = append(out, cmd)
		}
	}
	if name, ok := strings.CutPrefix(line, "use "); ok {
		for _, e := range c.order {
			if strings.HasPrefix(e, name) {
				out = append(out, "use "+e)
			}
		}
	}
	return out
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyName
	}
	return filepath.Join(home, historyName)
}
