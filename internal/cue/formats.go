package cue

import (
	"path/filepath"
	"strings"
)

var cueExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// IsSupportedExt reports whether Load can decode files with extension ext.
func IsSupportedExt(ext string) bool {
	return cueExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of cue formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}

func supported(path string) bool {
	return IsSupportedExt(filepath.Ext(path))
}
