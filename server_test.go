package main

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postMake(t *testing.T, namelist string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"namelist": {namelist}}
	req := httptest.NewRequest(http.MethodPost, "/make", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	handleMake(w, req, testOptions())
	return w
}

func TestHandleMake(t *testing.T) {
	w := postMake(t, "Ada Lovelace\nBob\n")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("Content-Type = %q, want application/zip", ct)
	}

	body := w.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "signs.pdf" {
		t.Fatalf("zip contents = %v, want just signs.pdf", zr.File)
	}

	f, err := zr.File[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("signs.pdf in zip is not a PDF")
	}
}

func TestHandleMakeEmptyList(t *testing.T) {
	w := postMake(t, "\n  \n")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
