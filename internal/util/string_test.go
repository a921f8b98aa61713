package util

import "testing"

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"music":          "Music",
		"fashion_brands": "Fashion_Brands",
		"video games":    "Video Games",
		"TV":             "Tv",
		"":               "",
		"a1b":            "A1B",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("한국어 텍스트", 5); got != "한국..." {
		t.Errorf("Truncate() = %q", got)
	}
}
