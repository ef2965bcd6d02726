package export

import (
	"io"
	"os"
	"path/filepath"

	"github.com/nvinuesa/puxporter/internal/onepux"
)

// attachmentExtractor copies attachment payloads out of the archive into
// item folders.
type attachmentExtractor struct {
	archive *onepux.Archive
	stats   *Stats
}

// ExtractAll copies every attachment of the item into folder and returns
// the file names written. An item has up to one document-level attachment
// plus any number of file-valued section fields. A failure on one
// attachment is recorded and the rest continue.
func (x *attachmentExtractor) ExtractAll(item *onepux.Item, folder string) []string {
	var extracted []string

	if doc := item.Details.DocumentAttributes; doc != nil && doc.DocumentID != "" {
		if name, ok := x.extractOne(doc.DocumentID, attachmentName(doc.FileName), folder); ok {
			extracted = append(extracted, name)
		}
	}

	for _, section := range item.Details.Sections {
		for _, field := range section.Fields {
			if field.Value.Kind != onepux.KindFile || field.Value.File == nil {
				continue
			}
			file := field.Value.File
			if file.DocumentID == "" {
				continue
			}
			if name, ok := x.extractOne(file.DocumentID, attachmentName(file.FileName), folder); ok {
				extracted = append(extracted, name)
			}
		}
	}

	return extracted
}

// extractOne resolves a document id to an archive member and copies its
// bytes verbatim into folder, de-duplicating the file name. Returns the
// final name used.
func (x *attachmentExtractor) extractOne(documentID, fileName, folder string) (string, bool) {
	member := x.archive.FindMemberWithPrefix(onepux.FilesPrefix + documentID)
	if member == nil {
		x.stats.AddError("attachment not found in archive: %s (ID: %s)", fileName, documentID)
		return "", false
	}

	outName := reserveUniqueFile(folder, SanitizeFilename(fileName))

	src, err := member.Open()
	if err != nil {
		x.stats.AddError("error extracting attachment %s: %v", fileName, err)
		return "", false
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(folder, outName))
	if err != nil {
		x.stats.AddError("error extracting attachment %s: %v", fileName, err)
		return "", false
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		x.stats.AddError("error extracting attachment %s: %v", fileName, err)
		return "", false
	}
	if err := dst.Close(); err != nil {
		x.stats.AddError("error extracting attachment %s: %v", fileName, err)
		return "", false
	}

	x.stats.AttachmentsExtracted++
	return outName, true
}

func attachmentName(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}
