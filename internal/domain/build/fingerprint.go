package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies one written output by the bytes that went into it.
type Fingerprint struct {
	OutputPath string `json:"output"`
	SourcePath string `json:"source"`
	Hash       string `json:"hash"`
}

func NewFingerprint(outputPath, sourcePath string, data []byte) Fingerprint {
	return Fingerprint{
		OutputPath: outputPath,
		SourcePath: sourcePath,
		Hash:       HashBytes(data),
	}
}

func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Changes compares one build's outputs against the previous one. Every list
// holds output paths in lexical order.
type Changes struct {
	Added     []string
	Changed   []string
	Unchanged []string
	Removed   []string
}
