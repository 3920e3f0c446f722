package server

import (
	"bytes"
	"compress/gzip"
	"strconv"
	"strings"
)

// acceptsGzip reports whether an Accept-Encoding value lists gzip with a
// non-zero quality.
func acceptsGzip(accept string) bool {
	for _, coding := range strings.Split(accept, ",") {
		coding, params, _ := strings.Cut(coding, ";")
		if strings.TrimSpace(coding) == "gzip" {
			return !zeroQuality(params)
		}
	}
	return false
}

// zeroQuality reports whether params carries q=0 (any of 0, 0.0, 0.000).
func zeroQuality(params string) bool {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil && q == 0
	}
	return false
}

// negotiateEncoding marks res as gzip encoded when req accepts it and
// compresses a non-empty body, keeping Content-Length in step.
func negotiateEncoding(req *Request, res *Response) error {
	if !acceptsGzip(req.Header.Get("Accept-Encoding")) {
		return nil
	}
	res.Header.Set("Content-Encoding", "gzip")
	if len(res.Body) == 0 {
		return nil
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(res.Body); err != nil {
		return err
	}
	if err := gw.Close(); err != nil {
		return err
	}
	res.Body = buf.Bytes()
	res.Header.Set("Content-Length", strconv.Itoa(len(res.Body)))
	return nil
}
