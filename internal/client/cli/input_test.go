package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n\n\n"))
	var out bytes.Buffer
	got, err := GetMultiline(in, "Enter text", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Unix newlines, stop on empty line",
			input:    "first\nsecond\n\nignored\n",
			expected: "first\nsecond",
		},
		{
			name:     "Windows CRLF, stop on empty line",
			input:    "first\r\nsecond\r\n\r\n",
			expected: "first\nsecond",
		},
		{
			name:     "Immediate blank line gives empty text",
			input:    "\n",
			expected: "",
		},
		{
			name:     "EOF without trailing blank line",
			input:    "first\nsecond",
			expected: "first\nsecond",
		},
		{
			name:     "Outer whitespace trimmed",
			input:    "  padded  \n\n",
			expected: "padded",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tc.input), "Description", &out)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestIsYes(t *testing.T) {
	for _, in := range []string{"y", "Y", "yes", " YES "} {
		require.True(t, IsYes(in), in)
	}
	for _, in := range []string{"", "n", "no", "yep", "1"} {
		require.False(t, IsYes(in), in)
	}
}
