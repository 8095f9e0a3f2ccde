package media

import "testing"

func TestUploadFolder(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{name: "default when empty", requested: "", want: "sweet_memories"},
		{name: "default when blank", requested: "   ", want: "sweet_memories"},
		{name: "custom folder kept", requested: "trips/2024", want: "trips/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UploadFolder(tt.requested); got != tt.want {
				t.Errorf("UploadFolder(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestGalleryFolderFor(t *testing.T) {
	tests := []struct {
		name     string
		folderID string
		want     string
	}{
		{name: "no folder id", folderID: "", want: "sweet_memories/folders"},
		{name: "with folder id", folderID: "abc", want: "sweet_memories/folders/abc"},
		{name: "folder id trimmed", folderID: " abc ", want: "sweet_memories/folders/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GalleryFolderFor(tt.folderID); got != tt.want {
				t.Errorf("GalleryFolderFor(%q) = %q, want %q", tt.folderID, got, tt.want)
			}
		})
	}
}

func TestValidPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{name: "png data uri", payload: "data:image/png;base64,iVBORw0KGgo=", want: true},
		{name: "svg data uri", payload: "data:image/svg+xml;base64,PHN2Zz4=", want: true},
		{name: "https url", payload: "https://example.com/a.jpg", want: true},
		{name: "http url", payload: "http://example.com/a.jpg", want: true},
		{name: "absolute path", payload: "/proc/self/environ"},
		{name: "relative path", payload: "data/sweet_memories.db"},
		{name: "dot env", payload: ".env"},
		{name: "file url", payload: "file:///etc/passwd"},
		{name: "ftp url", payload: "ftp://example.com/a.jpg"},
		{name: "url without host", payload: "https:///a.jpg"},
		{name: "non-image data uri", payload: "data:text/plain;base64,aGk="},
		{name: "data uri not base64", payload: "data:image/png,rawbytes"},
		{name: "data uri empty body", payload: "data:image/png;base64,"},
		{name: "data uri bad alphabet", payload: "data:image/png;base64,@@@"},
		{name: "empty", payload: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPayload(tt.payload); got != tt.want {
				t.Errorf("ValidPayload(%q) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}
