package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nvinuesa/puxporter/internal/model"
	"github.com/nvinuesa/puxporter/internal/onepux"
)

// csvColumns is the fixed CSV column order.
var csvColumns = []string{"Title", "URL", "Username", "Password", "Notes", "OTPAuth"}

// BuildLoginRecords flattens login-category items into records, preserving
// walk order. Duplicate titles get a _<n> suffix where n counts the
// occurrences of that exact title seen so far: the second "Site" becomes
// "Site_2". Missing titles default to "Untitled" before de-duplication.
func BuildLoginRecords(items []onepux.WalkedItem) []model.LoginRecord {
	titleCounts := make(map[string]int)
	var records []model.LoginRecord

	for _, wi := range items {
		item := wi.Item
		if !onepux.IsLogin(item.CategoryUUID) {
			continue
		}

		title := item.Title()
		titleCounts[title]++
		if n := titleCounts[title]; n > 1 {
			title = fmt.Sprintf("%s_%d", title, n)
		}

		records = append(records, model.LoginRecord{
			Title:    title,
			URL:      item.PrimaryURL(),
			Username: item.Username(),
			Password: item.Password(),
			Notes:    item.Notes(),
			OTPAuth:  item.OTPAuth(),
		})
	}
	return records
}

// WriteCSV writes the login records to path, overwriting any existing
// file. Every field is quoted unconditionally so passwords containing
// delimiters or newlines round-trip safely through the import schema.
func WriteCSV(path string, records []model.LoginRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := writeQuotedRow(w, csvColumns); err != nil {
		f.Close()
		return err
	}
	for _, r := range records {
		row := []string{r.Title, r.URL, r.Username, r.Password, r.Notes, r.OTPAuth}
		if err := writeQuotedRow(w, row); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeQuotedRow emits one CSV row with every field quoted, doubling any
// embedded quotes. encoding/csv only quotes when it must, which the import
// schema does not accept, so quoting is done here.
func writeQuotedRow(w io.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		quoted := `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		if _, err := io.WriteString(w, quoted); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
