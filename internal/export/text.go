package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvinuesa/puxporter/internal/onepux"
)

// textExporter writes one folder per non-login item: a human-readable text
// document plus the item's extracted attachments.
type textExporter struct {
	archive *onepux.Archive
	root    string // the non_password_data directory
	stats   *Stats
}

// exportItem renders the item into its own folder under the category
// directory. Folder name collisions are resolved by probing for the next
// free _<n> suffix.
func (e *textExporter) exportItem(item *onepux.Item, categoryName string) error {
	categoryDir := filepath.Join(e.root, SanitizeFilename(categoryName))
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		return err
	}

	title := item.Title()
	safeTitle := SanitizeFilename(title)
	folder := reserveUniqueDir(categoryDir, safeTitle)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return err
	}

	lines := []string{title, ""}

	lines = append(lines, "BASIC INFORMATION")
	lines = append(lines, "Category: "+categoryName)
	if url := item.PrimaryURL(); url != "" {
		lines = append(lines, "URL: "+url)
	}
	lines = append(lines, "")

	if notes := item.Notes(); notes != "" {
		lines = append(lines, "NOTES", notes, "")
	}

	if detailLines := renderSections(item); len(detailLines) > 0 {
		lines = append(lines, "DETAILS")
		lines = append(lines, detailLines...)
		lines = append(lines, "")
	}

	if item.CategoryUUID == onepux.CategorySSHKey {
		if keyLines := sshKeyLines(item); len(keyLines) > 0 {
			lines = append(lines, "SSH KEY")
			lines = append(lines, keyLines...)
			lines = append(lines, "")
		}
	}

	extractor := &attachmentExtractor{archive: e.archive, stats: e.stats}
	attached := extractor.ExtractAll(item, folder)
	if len(attached) > 0 {
		lines = append(lines, "ATTACHMENTS")
		lines = append(lines, fmt.Sprintf("This item has %d attachment(s) in this folder:", len(attached)), "")
		for _, name := range attached {
			lines = append(lines, "  • "+name)
		}
		lines = append(lines, "")
	}

	docPath := filepath.Join(folder, safeTitle+".txt")
	if err := os.WriteFile(docPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return err
	}

	e.stats.NonPasswordItems++
	return nil
}

// renderSections builds the DETAILS block: every section with at least one
// renderable field. File-valued fields are excluded here since they
// surface in the ATTACHMENTS block; fields without a title, and fields
// whose rendered value is empty or the empty placeholder, are skipped.
func renderSections(item *onepux.Item) []string {
	var detailLines []string

	for _, section := range item.Details.Sections {
		var sectionLines []string

		for _, field := range section.Fields {
			if field.Value.Kind == onepux.KindFile {
				continue
			}
			if field.Title == "" {
				continue
			}
			rendered := RenderFieldValue(field.Value, 0)
			trimmed := strings.TrimSpace(rendered)
			if trimmed == "" || trimmed == emptyPlaceholder {
				continue
			}
			sectionLines = append(sectionLines, field.Title+": "+rendered)
		}

		if len(sectionLines) == 0 {
			continue
		}
		if section.Title != "" {
			detailLines = append(detailLines, "", section.Title+":")
		}
		detailLines = append(detailLines, sectionLines...)
	}

	return detailLines
}
