package main

import (
	"archive/zip"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// ---------------------------------------------------------------------------
// HTTP server
// ---------------------------------------------------------------------------

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Stage signs</title></head>
<body>
<h1>Stage signs</h1>
<p>One name per line.</p>
<form action="/make" method="post">
<textarea name="namelist" rows="12" cols="40"></textarea><br>
<input type="submit" value="Make signs">
</form>
</body>
</html>
`

// serve runs the sign generator as an HTTP service. POST /make takes a
// namelist form field and responds with a zip holding the finished document.
func serve(addr string, opts options) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexPage)
	})

	mux.HandleFunc("/make", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		handleMake(w, r, opts)
	})

	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

// handleMake renders the submitted name list and streams back signs.zip.
func handleMake(w http.ResponseWriter, r *http.Request, opts options) {
	names, err := readNames(strings.NewReader(r.FormValue("namelist")))
	if err == nil && len(names) == 0 {
		err = fmt.Errorf("no names submitted")
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := buildDocument(names, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	data, err := doc.Bytes()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="signs.zip"`)

	zw := zip.NewWriter(w)
	f, err := zw.Create("signs.pdf")
	if err == nil {
		_, err = f.Write(data)
	}
	if err == nil {
		err = zw.Close()
	}
	if err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("failed to write zip response: %v", err)
	}
}
