package server

import (
	"bufio"
	"io"
	"strconv"
)

var nlcf = []byte{0x0d, 0x0a}

// writeResponse serializes res to w: status line, headers, blank line, body.
// The framing check runs before anything is written.
func writeResponse(w io.Writer, res *Response) error {
	res.checkFraming()

	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, res); err != nil {
		return err
	}
	if _, err := bw.Write(res.Body); err != nil {
		return err
	}
	return bw.Flush()
}

func writeHeader(conn *bufio.Writer, res *Response) error {
	if _, err := conn.WriteString(res.Version); err != nil {
		return err
	}
	if err := conn.WriteByte(' '); err != nil {
		return err
	}
	if _, err := conn.WriteString(strconv.Itoa(res.Status.Code())); err != nil {
		return err
	}
	if err := conn.WriteByte(' '); err != nil {
		return err
	}
	if _, err := conn.WriteString(res.Status.Reason()); err != nil {
		return err
	}
	if _, err := conn.Write(nlcf); err != nil {
		return err
	}

	var err error
	res.Header.Each(func(k, v string) {
		if err != nil {
			return
		}
		if _, err = conn.WriteString(k); err != nil {
			return
		}
		if _, err = conn.Write([]byte{':', ' '}); err != nil {
			return
		}
		if _, err = conn.WriteString(v); err != nil {
			return
		}
		_, err = conn.Write(nlcf)
	})
	if err != nil {
		return err
	}

	_, err = conn.Write(nlcf)
	return err
}
