// Package testhelpers provides in-process fake backends for reporter tests.
package testhelpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Point is one line protocol point as received by the fake server.
type Point struct {
	Name      string
	Tags      map[string]string
	Field     string // raw field assignment, e.g. "value=42i"
	Timestamp string
}

// WriteRequest is one captured /write call.
type WriteRequest struct {
	Database  string
	Precision string
	Username  string
	Password  string
	Points    []Point
}

// FakeInfluxDB is an in-process InfluxDB /write endpoint. It captures every
// request and answers with a configurable status code.
type FakeInfluxDB struct {
	server *httptest.Server

	mu           sync.Mutex
	requests     []WriteRequest
	responseCode int
}

func NewFakeInfluxDB() *FakeInfluxDB {
	f := &FakeInfluxDB{responseCode: http.StatusNoContent}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakeInfluxDB) handle(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		panic("fake influxdb: no body!")
	}

	username, password, _ := r.BasicAuth()
	request := WriteRequest{
		Database:  r.URL.Query().Get("db"),
		Precision: r.URL.Query().Get("precision"),
		Username:  username,
		Password:  password,
		Points:    parsePoints(string(body)),
	}

	f.mu.Lock()
	f.requests = append(f.requests, request)
	code := f.responseCode
	f.mu.Unlock()

	w.WriteHeader(code)
}

// URL returns the base URL of the fake server.
func (f *FakeInfluxDB) URL() string { return f.server.URL }

// HostPort returns the fake server address split into host and numeric port.
func (f *FakeInfluxDB) HostPort() (string, int) {
	u, err := url.Parse(f.server.URL)
	if err != nil {
		panic(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		panic(err)
	}
	return u.Hostname(), port
}

// SetResponseCode changes the status code returned to subsequent writes.
func (f *FakeInfluxDB) SetResponseCode(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responseCode = code
}

// Requests returns a copy of the captured write requests.
func (f *FakeInfluxDB) Requests() []WriteRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]WriteRequest(nil), f.requests...)
}

// Close shuts the fake server down.
func (f *FakeInfluxDB) Close() { f.server.Close() }

// parsePoints decodes the subset of line protocol the reporter emits: no
// escaped characters and a single field per point.
func parsePoints(body string) []Point {
	var points []Point
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, " ")
		point := Point{Tags: map[string]string{}}
		for i, section := range strings.Split(parts[0], ",") {
			if i == 0 {
				point.Name = section
				continue
			}
			kv := strings.SplitN(section, "=", 2)
			point.Tags[kv[0]] = kv[1]
		}
		if len(parts) > 1 {
			point.Field = parts[1]
		}
		if len(parts) > 2 {
			point.Timestamp = parts[2]
		}
		points = append(points, point)
	}
	return points
}
