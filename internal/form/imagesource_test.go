package form

import (
	"testing"

	"github.com/chamberedinseams/storefront/internal/domain"
)

func TestImageSourcePayload(t *testing.T) {
	if url, file := NoImage().Payload(); url != "" || file != "" {
		t.Fatalf("none must yield empty fields, got %q/%q", url, file)
	}
	if url, file := URLImage("https://img.example/a.jpg").Payload(); url != "https://img.example/a.jpg" || file != "" {
		t.Fatalf("url source must carry only the url, got %q/%q", url, file)
	}
	if url, file := UploadedImage("a.jpg", "data:image/jpeg;base64,xxx").Payload(); url != "" || file != "data:image/jpeg;base64,xxx" {
		t.Fatalf("upload source must carry only the preview data, got %q/%q", url, file)
	}
}

func TestImageFromProductFileWins(t *testing.T) {
	p := domain.Product{ImageURL: "https://img.example/a.jpg", ImageFile: "a.jpg"}
	src := ImageFromProduct(p)
	if !src.IsUpload() {
		t.Fatalf("stored file must win over url, got %+v", src)
	}
	if src := ImageFromProduct(domain.Product{ImageURL: "https://img.example/a.jpg"}); !src.IsURL() {
		t.Fatalf("url-only product must map to a url source, got %+v", src)
	}
	if src := ImageFromProduct(domain.Product{}); !src.IsNone() {
		t.Fatalf("imageless product must map to none, got %+v", src)
	}
}
