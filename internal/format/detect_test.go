package format

import "testing"

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{NDPA, "ndpa"},
		{CSV, "csv"},
		{Unknown, "unknown"},
		{Format(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Divisor(t *testing.T) {
	if got := NDPA.Divisor(); got != 1000 {
		t.Errorf("NDPA.Divisor() = %v, want 1000", got)
	}
	if got := CSV.Divisor(); got != 1 {
		t.Errorf("CSV.Divisor() = %v, want 1", got)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"slide.ndpa", NDPA},
		{"slide.NDPA", NDPA},
		{"slide.xml", NDPA},
		{"cells.csv", CSV},
		{"cells.CSV", CSV},
		{"notes.txt", Unknown},
		{"noext", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		want   Format
		wantOK bool
	}{
		{"", Unknown, true},
		{"auto", Unknown, true},
		{"NDPA", NDPA, true},
		{"csv", CSV, true},
		{"pdf", Unknown, false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		data string
		want Format
	}{
		{`<?xml version="1.0"?><annotations/>`, NDPA},
		{"\n  <?xml version=\"1.0\"?>", NDPA},
		{"\xef\xbb\xbf<?xml version=\"1.0\"?>", NDPA},
		{"<annotations></annotations>", NDPA},
		{"A,B,C,D,E,X,Y\n", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Sniff([]byte(tt.data)); got != tt.want {
			t.Errorf("Sniff(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}

func TestMismatch(t *testing.T) {
	tests := []struct {
		filename string
		head     string
		want     string
	}{
		{"a.ndpa", `<?xml version="1.0"?>`, ""},
		{"a.ndpa", "This is not valid XML <unclosed>tag", "not XML"},
		{"a.csv", "A,B,C\n1,2,3", ""},
		{"a.csv", `<?xml version="1.0"?>`, "appears to be XML, not CSV"},
		{"a.txt", "anything", ""},
	}

	for _, tt := range tests {
		if got := Mismatch(tt.filename, []byte(tt.head)); got != tt.want {
			t.Errorf("Mismatch(%q, %q) = %q, want %q", tt.filename, tt.head, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve(CSV, "slide.ndpa", nil); got != CSV {
		t.Errorf("forced format should win, got %v", got)
	}
	if got := Resolve(Unknown, "slide.ndpa", nil); got != NDPA {
		t.Errorf("extension should decide, got %v", got)
	}
	if got := Resolve(Unknown, "export.dat", []byte("<?xml version=\"1.0\"?>")); got != NDPA {
		t.Errorf("content sniffing should decide, got %v", got)
	}
	if got := Resolve(Unknown, "export.dat", []byte("a,b")); got != Unknown {
		t.Errorf("expected Unknown, got %v", got)
	}
}
