// Package jsonfiledb persists the whole application state as a single JSON
// document {users, assignments, submissions} on disk. Every operation reads
// the full document and mutating operations write it back in full; all access
// is serialized behind one mutex, so there is exactly one writer at a time.
package jsonfiledb

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

type (
	document struct {
		Users       []userRecord       `json:"users"`
		Assignments []assignmentRecord `json:"assignments"`
		Submissions []submissionRecord `json:"submissions"`
	}

	DB struct {
		mu   sync.Mutex
		path string
	}
)

func Open(path string) (*DB, error) {
	db := &DB{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := db.write(&document{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, errors.Wrap(err, "opening document store")
	}
	return db, nil
}

func (db *DB) read() (*document, error) {
	data, err := ioutil.ReadFile(db.path)
	if err != nil {
		return nil, errors.Wrap(err, "reading document store")
	}
	doc := new(document)
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "decoding document store")
	}
	return doc, nil
}

// write replaces the document atomically (temp file + rename) so a crashed
// write never leaves a half-written store behind.
func (db *DB) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding document store")
	}
	tmp := db.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "writing document store")
	}
	if err := os.Rename(tmp, filepath.Clean(db.path)); err != nil {
		return errors.Wrap(err, "replacing document store")
	}
	return nil
}

// view runs fn against a fresh read of the document.
func (db *DB) view(fn func(doc *document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	doc, err := db.read()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs fn against a fresh read of the document and writes the result
// back in full. The request only completes once the write is acknowledged.
func (db *DB) update(fn func(doc *document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	doc, err := db.read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return db.write(doc)
}
