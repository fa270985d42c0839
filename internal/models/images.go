package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrInvalidImageSet = errors.New("invalid dynamic image data")

// ImageVariant is one entry of a data-a-dynamic-image attribute, which maps
// an image URL to its [width, height].
type ImageVariant struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ImageSet keeps variants in the order they appear in the source JSON.
type ImageSet []ImageVariant

// ParseImageSet decodes a JSON object of the form {"<url>": [w, h], ...}.
// Anything other than an object of URL keys is rejected.
func ParseImageSet(raw string) (ImageSet, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageSet, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected object, got %v", ErrInvalidImageSet, tok)
	}

	set := make(ImageSet, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImageSet, err)
		}
		url, ok := keyTok.(string)
		if !ok || url == "" {
			return nil, fmt.Errorf("%w: empty image url", ErrInvalidImageSet)
		}

		var size []int
		if err := dec.Decode(&size); err != nil {
			return nil, fmt.Errorf("%w: size for %s: %v", ErrInvalidImageSet, url, err)
		}

		variant := ImageVariant{URL: url}
		if len(size) >= 2 {
			variant.Width, variant.Height = size[0], size[1]
		}
		set = append(set, variant)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageSet, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidImageSet)
	}

	return set, nil
}

// Primary returns the first image URL, or "" for an empty set.
func (s ImageSet) Primary() string {
	if len(s) == 0 {
		return ""
	}
	return s[0].URL
}

func (s ImageSet) URLs() []string {
	urls := make([]string, len(s))
	for i, v := range s {
		urls[i] = v.URL
	}
	return urls
}

func (s ImageSet) Lookup(url string) (ImageVariant, bool) {
	for _, v := range s {
		if v.URL == url {
			return v, true
		}
	}
	return ImageVariant{}, false
}
