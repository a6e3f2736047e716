package langdetect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Fallback is the tag used whenever detection gives no usable answer.
const Fallback = "en"

var ErrUndetectable = errors.New("language could not be detected")

// Detect returns the ISO 639-1 tag (ISO 639-3 when no two-letter code exists)
// of text. Unreliable guesses are reported as ErrUndetectable.
func Detect(text string) (lang string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lang, err = "", fmt.Errorf("%w: %v", ErrUndetectable, r)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return "", ErrUndetectable
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "", ErrUndetectable
	}

	tag := info.Lang.Iso6391()
	if tag == "" {
		tag = info.Lang.Iso6393()
	}
	if tag == "" {
		return "", ErrUndetectable
	}
	return tag, nil
}

// DetectOrFallback never fails; it returns Fallback when Detect does.
func DetectOrFallback(text string) string {
	lang, err := Detect(text)
	if err != nil {
		return Fallback
	}
	return lang
}
