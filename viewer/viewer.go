/*
 * viewer.go, part of electrolens.
 *
 * Copyright 2024 The electrolens authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package viewer hands configuration documents to the ElectroLens renderer. The renderer is a
//JavaScript bundle that runs in a web browser; the viewer writes a page that loads the bundle
//and passes it the document, and opens the page. Nothing is returned from the browser.
//
//Both Browser and Recorder implement electrolens.Launcher.
package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/browser"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//StaticEnv is the environment variable with the directory of the renderer's static files.
const StaticEnv = "ELECTROLENS_STATIC"

//DefaultBundle is the name of the renderer script in the static directory.
const DefaultBundle = "main.js"

var page = template.Must(template.New("electrolens").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ElectroLens - {{.Title}}</title>
<style>body { margin: 0; overflow: hidden; }</style>
</head>
<body>
<div id="container"></div>
<script src="{{.Bundle}}"></script>
<script>
window.addEventListener("load", function () {
	defineData({{.Document}});
});
</script>
</body>
</html>
`))

//Browser shows documents in the system's web browser.
type Browser struct {
	//StaticDir is the directory with the renderer's files.
	StaticDir string
	//Bundle is the renderer script, relative to StaticDir. DefaultBundle if empty.
	Bundle string
	//PageDir is where the pages are written. The system's temporary directory if empty.
	PageDir string
	//Title is shown in the browser window.
	Title string

	open func(path string) error
}

//NewBrowser returns a Browser for the renderer in staticDir.
func NewBrowser(staticDir string) *Browser {
	return &Browser{StaticDir: staticDir, Bundle: DefaultBundle, Title: "plot", open: browser.OpenFile}
}

//NewBrowserFromEnv returns a Browser for the renderer in the directory given by the
//ELECTROLENS_STATIC environment variable. It returns an error if the variable is not set.
func NewBrowserFromEnv() (*Browser, error) {
	dir := os.Getenv(StaticEnv)
	if dir == "" {
		return nil, errors.Errorf("%s not set: can't find the renderer", StaticEnv)
	}
	return NewBrowser(dir), nil
}

//WritePage writes the page that shows document, and returns its path.
func (B *Browser) WritePage(document []byte) (string, error) {
	if !json.Valid(document) {
		return "", errors.New("the document is not valid JSON")
	}
	bundle := B.Bundle
	if bundle == "" {
		bundle = DefaultBundle
	}
	static, err := filepath.Abs(B.StaticDir)
	if err != nil {
		return "", errors.Wrap(err, "renderer directory")
	}
	f, err := os.CreateTemp(B.PageDir, "electrolens-*.html")
	if err != nil {
		return "", errors.Wrap(err, "can't create the page")
	}
	//Configuration files come unescaped; a "</script>" in any string would end the script.
	var safe bytes.Buffer
	json.HTMLEscape(&safe, document)
	data := struct {
		Title    string
		Bundle   template.URL
		Document template.JS
	}{
		Title:    B.Title,
		Bundle:   template.URL("file://" + filepath.ToSlash(filepath.Join(static, bundle))),
		Document: template.JS(safe.String()),
	}
	if err := page.Execute(f, data); err != nil {
		f.Close()
		return "", errors.Wrap(err, "can't write the page")
	}
	return f.Name(), errors.Wrap(f.Close(), "can't write the page")
}

//Launch writes the page for document and opens it in the browser. It doesn't wait
//for the browser to show it.
func (B *Browser) Launch(ctx context.Context, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := B.WritePage(document)
	if err != nil {
		return err
	}
	open := B.open
	if open == nil {
		open = browser.OpenFile
	}
	log.WithField("prefix", "electrolens").Infof("opening %s", name)
	return errors.Wrapf(open(name), "can't open %s", name)
}

//Recorder keeps the documents it is asked to show instead of showing them. It is meant for
//tests and dry runs.
type Recorder struct {
	mu        sync.Mutex
	documents [][]byte
}

//Launch records document.
func (R *Recorder) Launch(ctx context.Context, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d := make([]byte, len(document))
	copy(d, document)
	R.mu.Lock()
	R.documents = append(R.documents, d)
	R.mu.Unlock()
	return nil
}

//Last returns the last document recorded, or nil if there is none.
func (R *Recorder) Last() []byte {
	R.mu.Lock()
	defer R.mu.Unlock()
	if len(R.documents) == 0 {
		return nil
	}
	return R.documents[len(R.documents)-1]
}

//Len returns the number of documents recorded.
func (R *Recorder) Len() int {
	R.mu.Lock()
	defer R.mu.Unlock()
	return len(R.documents)
}
