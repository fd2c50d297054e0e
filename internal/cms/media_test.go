package cms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/images/cat.png", "cat.png"},
		{"https://cdn.example.com/images/cat.png?w=200&h=100", "cat.png"},
		{"https://cdn.example.com/images/", "image.jpg"},
		{"plainname.webp", "plainname.webp"},
	}

	for _, tt := range tests {
		if got := FilenameFromURL(tt.url); got != tt.want {
			t.Errorf("FilenameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestUploadImage(t *testing.T) {
	imageBytes := []byte("pngbytes")

	var mux http.ServeMux
	mux.HandleFunc("/images/photo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(imageBytes)
	})
	mux.HandleFunc("/api/media", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "users API-Key test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "photo.png" {
			t.Errorf("filename = %q, want %q", header.Filename, "photo.png")
		}
		if got := header.Header.Get("Content-Type"); got != "image/png" {
			t.Errorf("part content type = %q, want %q", got, "image/png")
		}
		data, _ := io.ReadAll(file)
		if string(data) != string(imageBytes) {
			t.Errorf("uploaded bytes = %q, want %q", data, imageBytes)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"doc":{"id":31,"url":"https://store/media/photo.png","createdAt":"","updatedAt":""}}`)
	})

	srv := httptest.NewServer(&mux)
	defer srv.Close()

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	media, err := c.UploadImage(context.Background(), srv.URL+"/images/photo.png?token=abc")
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if media.ID != 31 {
		t.Errorf("media.ID = %d, want 31", media.ID)
	}
}

func TestUploadImageDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	if _, err := c.UploadImage(context.Background(), srv.URL+"/gone.png"); err == nil {
		t.Error("expected error for failed download, got nil")
	}
}

func TestUploadImageUploadFailure(t *testing.T) {
	var mux http.ServeMux
	mux.HandleFunc("/img.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	})
	mux.HandleFunc("/api/media", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"too large"}]}`, http.StatusBadRequest)
	})
	srv := httptest.NewServer(&mux)
	defer srv.Close()

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	_, err := c.UploadImage(context.Background(), srv.URL+"/img.jpg")
	if err == nil {
		t.Fatal("expected error for failed upload, got nil")
	}
}
