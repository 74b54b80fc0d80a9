// Package fingerprint provides deterministic identities for corpora and vocabularies,
// used as keys for cached weights.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strconv"

	"github.com/hyperjump/yoyaku/internal/models"
)

const (
	corpusPrefix = "corpus:"
	vocabPrefix  = "vocab:"
	docPrefix    = "file:"
)

// FileDocID returns a stable document ID for the given absolute path.
// Same path always yields the same ID.
func FileDocID(absolutePath string) string {
	normalized := filepath.Clean(absolutePath)
	hash := sha256.Sum256([]byte(normalized))
	return docPrefix + hex.EncodeToString(hash[:])
}

// Corpus hashes document order, IDs, sentence texts and terms. Any change to any of
// them yields a different identity.
func Corpus(docs []models.Document) string {
	h := sha256.New()
	for _, doc := range docs {
		writeField(h, doc.ID)
		writeField(h, strconv.Itoa(len(doc.Sentences)))
		for _, s := range doc.Sentences {
			writeField(h, s.Text)
			writeField(h, strconv.Itoa(len(s.Terms)))
			for _, t := range s.Terms {
				writeField(h, t)
			}
		}
	}
	return corpusPrefix + hex.EncodeToString(h.Sum(nil))
}

// Vocabulary hashes an ordered term list.
func Vocabulary(terms []string) string {
	h := sha256.New()
	for _, t := range terms {
		writeField(h, t)
	}
	return vocabPrefix + hex.EncodeToString(h.Sum(nil))
}

// Key joins the components that determine cached weights.
func Key(corpusID, vocabVersion, policy string) string {
	hash := sha256.Sum256([]byte(corpusID + "\x00" + vocabVersion + "\x00" + policy))
	return hex.EncodeToString(hash[:])
}

type writer interface {
	Write(p []byte) (int, error)
}

// writeField writes a length-prefixed field so concatenations cannot collide.
func writeField(w writer, s string) {
	_, _ = w.Write([]byte(strconv.Itoa(len(s))))
	_, _ = w.Write([]byte{':'})
	_, _ = w.Write([]byte(s))
}
