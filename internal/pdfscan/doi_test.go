package pdfscan

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain doi",
			text: "Revista X, v. 13, n. 2. 10.1590/ts.v13i2.12345 Recebido em 2001.",
			want: "10.1590/ts.v13i2.12345",
		},
		{
			name: "trailing punctuation stripped",
			text: "disponível em https://doi.org/10.1590/0103-1104.2022; acesso em 2022",
			want: "10.1590/0103-1104.2022",
		},
		{
			name: "first valid match wins",
			text: "10.1590/a e depois 10.1016/j.tese.2020.101234",
			// "10.1590/a" is shorter than the minimum DOI length, so
			// the second candidate wins.
			want: "10.1016/j.tese.2020.101234",
		},
		{
			name: "no doi",
			text: "nenhum identificador aqui",
			want: "",
		},
		{
			name: "missing suffix rejected",
			text: "10.1590/ fim",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText("does-not-exist.pdf", 1); err == nil {
		t.Error("ExtractText on missing file succeeded, want error")
	}
}
