// Package kdbx writes exported login records to a KeePass 2 database.
package kdbx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tobischo/gokeepasslib/v3"
	"github.com/tobischo/gokeepasslib/v3/wrappers"

	"github.com/nvinuesa/puxporter/internal/model"
)

// DatabaseName names the generated database and its root group.
const DatabaseName = "1Password Export"

// ErrMissingPassword is returned when no master password was provided.
var ErrMissingPassword = errors.New("master password is required for KeePass output")

// Write creates a KeePass database at path holding one entry per login
// record, protected by masterPassword. Passwords and OTP URIs are stored
// as protected values.
func Write(path, masterPassword string, records []model.LoginRecord) error {
	if masterPassword == "" {
		return ErrMissingPassword
	}

	db := gokeepasslib.NewDatabase()
	db.Credentials = gokeepasslib.NewPasswordCredentials(masterPassword)

	root := gokeepasslib.NewGroup()
	root.Name = DatabaseName
	for _, r := range records {
		root.Entries = append(root.Entries, buildEntry(r))
	}
	db.Content.Root.Groups = append(db.Content.Root.Groups, root)

	now := time.Now()
	db.Content.Meta.DatabaseName = DatabaseName
	db.Content.Meta.DatabaseNameChanged = &wrappers.TimeWrapper{Time: now}

	if err := db.LockProtectedEntries(); err != nil {
		return fmt.Errorf("lock entries: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := gokeepasslib.NewEncoder(f).Encode(db); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func buildEntry(r model.LoginRecord) gokeepasslib.Entry {
	entry := gokeepasslib.NewEntry()
	entry.Values = append(entry.Values,
		value("Title", r.Title),
		value("UserName", r.Username),
		protectedValue("Password", r.Password),
		value("URL", r.URL),
		value("Notes", r.Notes),
	)
	if r.OTPAuth != "" {
		entry.Values = append(entry.Values, protectedValue("otp", r.OTPAuth))
	}
	return entry
}

func value(key, content string) gokeepasslib.ValueData {
	return gokeepasslib.ValueData{
		Key:   key,
		Value: gokeepasslib.V{Content: content},
	}
}

func protectedValue(key, content string) gokeepasslib.ValueData {
	return gokeepasslib.ValueData{
		Key: key,
		Value: gokeepasslib.V{
			Content:   content,
			Protected: wrappers.NewBoolWrapper(true),
		},
	}
}
