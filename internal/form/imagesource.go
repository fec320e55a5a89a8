package form

import "github.com/chamberedinseams/storefront/internal/domain"

type imageKind int

const (
	imageNone imageKind = iota
	imageURL
	imageUpload
)

// ImageSource is the closed set of image states for a form draft:
// none, a remote URL, or a just-uploaded file with preview data. Building
// it only through the constructors makes the URL/file mutual exclusion
// structural instead of relying on scattered field clearing.
type ImageSource struct {
	kind    imageKind
	url     string
	handle  string
	preview string
}

func NoImage() ImageSource {
	return ImageSource{kind: imageNone}
}

func URLImage(url string) ImageSource {
	if url == "" {
		return NoImage()
	}
	return ImageSource{kind: imageURL, url: url, preview: url}
}

// UploadedImage records a chosen file handle and its preview data (the
// data the submit payload will carry).
func UploadedImage(handle string, preview string) ImageSource {
	if handle == "" && preview == "" {
		return NoImage()
	}
	return ImageSource{kind: imageUpload, handle: handle, preview: preview}
}

// ImageFromProduct rebuilds the source for an existing record. An uploaded
// file wins over a URL, matching how the shop renders stored products.
func ImageFromProduct(p domain.Product) ImageSource {
	if p.ImageFile != "" {
		return UploadedImage(p.ImageFile, p.ImageFile)
	}
	if p.ImageURL != "" {
		return URLImage(p.ImageURL)
	}
	return NoImage()
}

func (s ImageSource) IsNone() bool   { return s.kind == imageNone }
func (s ImageSource) IsURL() bool    { return s.kind == imageURL }
func (s ImageSource) IsUpload() bool { return s.kind == imageUpload }

// URL returns the url value when the source is a URL, else empty.
func (s ImageSource) URL() string {
	if s.kind == imageURL {
		return s.url
	}
	return ""
}

// Preview is what the admin form displays for the current source.
func (s ImageSource) Preview() string {
	return s.preview
}

// Payload resolves the submit fields: preview data for a chosen file,
// otherwise the URL, otherwise both absent.
func (s ImageSource) Payload() (url string, file string) {
	switch s.kind {
	case imageUpload:
		return "", s.preview
	case imageURL:
		return s.url, ""
	default:
		return "", ""
	}
}
