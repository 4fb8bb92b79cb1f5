package notion

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/model"
)

// Service resolves Notion page URLs to analyzable text and saves notes
// back into Notion databases
type Service interface {
	Resolve(ctx context.Context, url string) (string, error)
	SaveNote(ctx context.Context, databaseID, title, content string) (string, error)
	SearchDatabases(ctx context.Context, query string) ([]*model.NotionDatabase, error)
}

// client implements Service over the Notion API
type client struct {
	api *notionapi.Client
}

// New creates a new Notion service with the provided API token
func New(token string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Notion API token is required")
	}

	return &client{
		api: notionapi.NewClient(
			notionapi.Token(token),
			notionapi.WithRetry(3), // Retry up to 3 times on rate limit (HTTP 429)
		),
	}, nil
}

// Resolve fetches a Notion page by URL or raw ID and renders its blocks
// as markdown-flavored text
func (c *client) Resolve(ctx context.Context, url string) (string, error) {
	pageID, err := model.ParseNotionID(url)
	if err != nil {
		return "", goerr.Wrap(err, "cannot determine Notion page ID", goerr.V("url", url))
	}

	page, err := c.api.Page.Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		return "", goerr.Wrap(err, "failed to get page", goerr.V("pageID", pageID))
	}

	var sb strings.Builder
	if title := pageTitle(page); title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}

	if err := c.renderBlocks(ctx, &sb, pageID, 0); err != nil {
		return "", goerr.Wrap(err, "failed to fetch page blocks", goerr.V("pageID", pageID))
	}

	return sb.String(), nil
}

// SaveNote creates a page in the database with the content rendered as
// blocks. The database may be given as a URL or raw ID. Returns the
// created page ID.
func (c *client) SaveNote(ctx context.Context, databaseID, title, content string) (string, error) {
	dbID, err := model.ParseNotionID(databaseID)
	if err != nil {
		return "", goerr.Wrap(err, "cannot determine Notion database ID",
			goerr.V("databaseID", databaseID))
	}

	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{Text: &notionapi.Text{Content: title}},
				},
			},
		},
		Children: markdownToBlocks(content),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to create page", goerr.V("databaseID", dbID))
	}

	return page.ID.String(), nil
}

// SearchDatabases returns databases matching the query, in the order the
// Notion API ranks them
func (c *client) SearchDatabases(ctx context.Context, query string) ([]*model.NotionDatabase, error) {
	resp, err := c.api.Search.Do(ctx, &notionapi.SearchRequest{
		Query: query,
		Filter: notionapi.SearchFilter{
			Value:    "database",
			Property: "object",
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search databases", goerr.V("query", query))
	}

	var dbs []*model.NotionDatabase
	for _, obj := range resp.Results {
		db, ok := obj.(*notionapi.Database)
		if !ok {
			continue
		}
		dbs = append(dbs, &model.NotionDatabase{
			ID:    db.ID.String(),
			Title: richTextToString(db.Title),
		})
	}

	return dbs, nil
}

// maxBlockDepth bounds recursion into nested block children
const maxBlockDepth = 5

func (c *client) renderBlocks(ctx context.Context, sb *strings.Builder, blockID string, depth int) error {
	if depth > maxBlockDepth {
		return nil
	}

	var cursor notionapi.Cursor
	for {
		resp, err := c.api.Block.GetChildren(ctx, notionapi.BlockID(blockID), &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			return goerr.Wrap(err, "failed to get block children", goerr.V("blockID", blockID))
		}

		for _, blockObj := range resp.Results {
			line := renderBlock(blockObj)
			if line != "" {
				sb.WriteString(strings.Repeat("  ", depth))
				sb.WriteString(line)
				sb.WriteString("\n")
			}

			if blockObj.GetHasChildren() {
				if err := c.renderBlocks(ctx, sb, blockObj.GetID().String(), depth+1); err != nil {
					return err
				}
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}

	return nil
}

// renderBlock converts one block to a line of markdown-flavored text.
// Unsupported block types render as their plain text, or nothing.
func renderBlock(blockObj notionapi.Block) string {
	switch b := blockObj.(type) {
	case *notionapi.ParagraphBlock:
		return richTextToString(b.Paragraph.RichText)
	case *notionapi.Heading1Block:
		return "# " + richTextToString(b.Heading1.RichText)
	case *notionapi.Heading2Block:
		return "## " + richTextToString(b.Heading2.RichText)
	case *notionapi.Heading3Block:
		return "### " + richTextToString(b.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		return "- " + richTextToString(b.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		return "1. " + richTextToString(b.NumberedListItem.RichText)
	case *notionapi.QuoteBlock:
		return "> " + richTextToString(b.Quote.RichText)
	case *notionapi.CalloutBlock:
		return "> " + richTextToString(b.Callout.RichText)
	case *notionapi.ToDoBlock:
		if b.ToDo.Checked {
			return "- [x] " + richTextToString(b.ToDo.RichText)
		}
		return "- [ ] " + richTextToString(b.ToDo.RichText)
	case *notionapi.CodeBlock:
		return "```" + string(b.Code.Language) + "\n" + richTextToString(b.Code.RichText) + "\n```"
	case *notionapi.ToggleBlock:
		return richTextToString(b.Toggle.RichText)
	case *notionapi.DividerBlock:
		return "---"
	default:
		return ""
	}
}

func richTextToString(rts []notionapi.RichText) string {
	var sb strings.Builder
	for _, rt := range rts {
		sb.WriteString(rt.PlainText)
	}
	return sb.String()
}

// pageTitle extracts the title property of a page
func pageTitle(page *notionapi.Page) string {
	for _, prop := range page.Properties {
		if title, ok := prop.(*notionapi.TitleProperty); ok {
			return richTextToString(title.Title)
		}
	}
	return ""
}
