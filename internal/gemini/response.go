package gemini

import (
	"bytes"
	"mime"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// MaxMetaLength is the protocol's recommended upper bound for meta. It is
// reported, not enforced.
const MaxMetaLength = 1024

var crlf = []byte("\r\n")

// Response is a parsed server reply.
type Response struct {
	Status int
	Meta   string
	Body   []byte
}

// ParseResponse splits a raw response into status, meta and body.
func ParseResponse(raw []byte) (*Response, error) {
	header, body, found := bytes.Cut(raw, crlf)
	if !found {
		return nil, &ProtocolError{Reason: "missing CRLF after header"}
	}

	line := strings.TrimLeftFunc(toValidUTF8(header), unicode.IsSpace)
	token, meta := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		token = line[:i]
		meta = strings.TrimLeftFunc(line[i:], unicode.IsSpace)
	}

	status, err := parseStatus(token)
	if err != nil {
		return nil, err
	}
	return &Response{Status: status, Meta: meta, Body: body}, nil
}

func parseStatus(token string) (int, error) {
	if token == "" {
		return 0, &ProtocolError{Reason: "empty status"}
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, &ProtocolError{Reason: "non-numeric status " + strconv.Quote(token)}
		}
	}
	status, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ProtocolError{Reason: "status out of range " + strconv.Quote(token)}
	}
	return status, nil
}

func (r *Response) Class() StatusClass {
	return Classify(r.Status)
}

// MediaType returns the MIME type of a success response, defaulting to
// text/gemini when meta is empty.
func (r *Response) MediaType() string {
	if strings.TrimSpace(r.Meta) == "" {
		return "text/gemini"
	}
	mediaType, _, err := mime.ParseMediaType(r.Meta)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(r.Meta, ";", 2)[0]))
	}
	return mediaType
}

// Text decodes the body. A charset parameter in meta is honoured when known;
// otherwise the body is read as UTF-8 with invalid sequences replaced.
func (r *Response) Text() string {
	charset := ""
	if _, params, err := mime.ParseMediaType(r.Meta); err == nil {
		charset = strings.ToLower(strings.TrimSpace(params["charset"]))
	}
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return toValidUTF8(r.Body)
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return toValidUTF8(r.Body)
	}
	decoded, err := enc.NewDecoder().Bytes(r.Body)
	if err != nil {
		return toValidUTF8(r.Body)
	}
	return toValidUTF8(decoded)
}

func toValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return string(bytes.ToValidUTF8(b, []byte(string(utf8.RuneError))))
}
