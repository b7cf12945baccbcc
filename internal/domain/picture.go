package domain

import "strings"

// MaxPictureSize caps uploaded picture content.
const MaxPictureSize = 5 << 20

// Picture is the metadata of an image. The bytes live in the picture
// content store under the picture id.
type Picture struct {
	Ordered

	Name        string
	ContentType string
	Size        int64
}

func (p *Picture) Clone() *Picture {
	c := *p
	return &c
}

func (p *Picture) Validate() error {
	var v ValidationErrors
	p.Name = checkName(&v, "name", p.Name)
	p.ContentType = strings.TrimSpace(p.ContentType)
	if p.ContentType != "" && !strings.HasPrefix(p.ContentType, "image/") {
		v.Add("content_type", "must be an image type")
	}
	if p.Size < 0 || p.Size > MaxPictureSize {
		v.Add("size", "must be between 0 and 5 MiB")
	}
	return v.Err()
}
