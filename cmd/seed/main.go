// Command seed loads a catalog file, checks it against the embedded JSON
// Schema and inserts everything through the store. Books reference their
// author and publisher by name; comments ride along inside each book.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/xeipuuv/gojsonschema"

	"github.com/PabloGitu/bookmanagerrmh2/internal/author"
	"github.com/PabloGitu/bookmanagerrmh2/internal/book"
	"github.com/PabloGitu/bookmanagerrmh2/internal/comment"
	"github.com/PabloGitu/bookmanagerrmh2/internal/config"
	"github.com/PabloGitu/bookmanagerrmh2/internal/publisher"
	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

//go:embed catalog.schema.json
var catalogSchema []byte

const queryTimeout = 5 * time.Second

type seedComment struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

type seedBook struct {
	Title           string        `json:"title"`
	ISBN            string        `json:"isbn"`
	PublicationDate string        `json:"publicationDate"`
	Description     string        `json:"description"`
	Author          string        `json:"author"`
	Publisher       string        `json:"publisher"`
	Comments        []seedComment `json:"comments"`
}

type catalog struct {
	Authors    []author.Author       `json:"authors"`
	Publishers []publisher.Publisher `json:"publishers"`
	Books      []seedBook            `json:"books"`
}

func main() {
	file := flag.String("file", "db/seed/catalog.json", "Catalog file to load")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("reading catalog: %v", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(catalogSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		log.Fatalf("validating catalog: %v", err)
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			log.Printf("  - %s", desc)
		}
		log.Fatalf("%s does not match the catalog schema", *file)
	}

	var cat catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		log.Fatalf("parsing catalog: %v", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer st.Close()

	if cfg.Database.Driver == "sqlite" {
		if err := st.MigrateUp(); err != nil {
			log.Fatalf("applying migrations: %v", err)
		}
	}

	start := time.Now()
	comments := seed(ctx, st, &cat)

	log.Printf("seeded %s authors, %s publishers, %s books, %s comments in %s",
		humanize.Comma(int64(len(cat.Authors))),
		humanize.Comma(int64(len(cat.Publishers))),
		humanize.Comma(int64(len(cat.Books))),
		humanize.Comma(int64(comments)),
		time.Since(start).Round(time.Millisecond))
}

// seed inserts authors and publishers first so books can reference them,
// then books, then each book's comments. Returns the comment count.
func seed(ctx context.Context, st *store.Store, cat *catalog) int {
	authorRepo := author.NewSQLRepo(st, queryTimeout)
	publisherRepo := publisher.NewSQLRepo(st, queryTimeout)
	bookRepo := book.NewSQLRepo(st, queryTimeout)
	commentRepo := comment.NewSQLRepo(st, queryTimeout)

	total := len(cat.Authors) + len(cat.Publishers) + len(cat.Books)
	for _, b := range cat.Books {
		total += len(b.Comments)
	}
	bar := progressbar.Default(int64(total), "seeding")

	authorIDs := make(map[string]int64, len(cat.Authors))
	for i := range cat.Authors {
		a := &cat.Authors[i]
		if err := authorRepo.Save(ctx, a); err != nil {
			log.Fatalf("inserting author %q: %v", a.Name, err)
		}
		authorIDs[a.Name] = a.ID
		_ = bar.Add(1)
	}

	publisherIDs := make(map[string]int64, len(cat.Publishers))
	for i := range cat.Publishers {
		p := &cat.Publishers[i]
		if err := publisherRepo.Save(ctx, p); err != nil {
			log.Fatalf("inserting publisher %q: %v", p.Name, err)
		}
		publisherIDs[p.Name] = p.ID
		_ = bar.Add(1)
	}

	comments := 0
	for _, sb := range cat.Books {
		b := book.Book{
			Title:           sb.Title,
			ISBN:            sb.ISBN,
			PublicationDate: sb.PublicationDate,
			Description:     sb.Description,
		}
		if sb.Author != "" {
			id, ok := authorIDs[sb.Author]
			if !ok {
				log.Fatalf("book %q references unknown author %q", sb.Title, sb.Author)
			}
			b.AuthorID = &id
		}
		if sb.Publisher != "" {
			id, ok := publisherIDs[sb.Publisher]
			if !ok {
				log.Fatalf("book %q references unknown publisher %q", sb.Title, sb.Publisher)
			}
			b.PublisherID = &id
		}
		if err := bookRepo.Save(ctx, &b); err != nil {
			log.Fatalf("inserting book %q: %v", sb.Title, err)
		}
		_ = bar.Add(1)

		for _, sc := range sb.Comments {
			c := comment.Comment{Text: sc.Text, Date: sc.Date, BookID: &b.ID}
			if c.Date == "" {
				c.Date = time.Now().UTC().Format(time.RFC3339)
			}
			if err := commentRepo.Save(ctx, &c); err != nil {
				log.Fatalf("inserting comment on %q: %v", sb.Title, err)
			}
			comments++
			_ = bar.Add(1)
		}
	}

	return comments
}
