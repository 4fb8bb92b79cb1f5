package notion

import (
	"strings"

	"github.com/jomei/notionapi"
)

// maxSaveBlocks caps the children of a created page; the Notion API
// rejects requests with more than 100 blocks
const maxSaveBlocks = 100

// markdownToBlocks converts markdown-flavored note content to Notion
// blocks, one block per non-empty line. This is the inverse of
// renderBlock for the block types notes actually produce; anything
// unrecognized becomes a paragraph.
func markdownToBlocks(content string) []notionapi.Block {
	var blocks []notionapi.Block

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(blocks) >= maxSaveBlocks {
			break
		}
		blocks = append(blocks, lineToBlock(line))
	}

	return blocks
}

func lineToBlock(line string) notionapi.Block {
	basic := func(t notionapi.BlockType) notionapi.BasicBlock {
		return notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   t,
		}
	}

	switch {
	case strings.HasPrefix(line, "### "):
		return &notionapi.Heading3Block{
			BasicBlock: basic(notionapi.BlockTypeHeading3),
			Heading3:   notionapi.Heading{RichText: plainRichText(line[4:])},
		}
	case strings.HasPrefix(line, "## "):
		return &notionapi.Heading2Block{
			BasicBlock: basic(notionapi.BlockTypeHeading2),
			Heading2:   notionapi.Heading{RichText: plainRichText(line[3:])},
		}
	case strings.HasPrefix(line, "# "):
		return &notionapi.Heading1Block{
			BasicBlock: basic(notionapi.BlockTypeHeading1),
			Heading1:   notionapi.Heading{RichText: plainRichText(line[2:])},
		}
	case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: plainRichText(line[2:])},
		}
	case strings.HasPrefix(line, "> "):
		return &notionapi.QuoteBlock{
			BasicBlock: basic(notionapi.BlockTypeQuote),
			Quote:      notionapi.Quote{RichText: plainRichText(line[2:])},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: basic(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: plainRichText(line)},
		}
	}
}

func plainRichText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: s}},
	}
}
