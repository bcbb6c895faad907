package store

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

var frontmatterDelim = []byte("---\n")

// marshalFrontmatter renders a markdown file: a YAML metadata block between
// --- fences followed by the body text.
func marshalFrontmatter(meta any, body string) ([]byte, error) {
	y, err := yaml.Marshal(meta)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(frontmatterDelim)
	buf.Write(y)
	buf.Write(frontmatterDelim)
	buf.WriteByte('\n')
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// unmarshalFrontmatter splits a markdown file into its metadata block and body
// and decodes the metadata into meta. Files without a frontmatter fence decode
// as empty metadata with the whole file as body.
func unmarshalFrontmatter(data []byte, meta any) (body string, err error) {
	if !bytes.HasPrefix(data, frontmatterDelim) {
		return string(data), nil
	}
	rest := data[len(frontmatterDelim):]
	end := bytes.Index(rest, frontmatterDelim)
	if end < 0 {
		return "", fmt.Errorf("unterminated frontmatter block")
	}
	if err := yaml.Unmarshal(rest[:end], meta); err != nil {
		return "", fmt.Errorf("decode frontmatter: %w", err)
	}
	body = string(rest[end+len(frontmatterDelim):])
	body = strings.TrimPrefix(body, "\n")
	return strings.TrimSuffix(body, "\n"), nil
}
