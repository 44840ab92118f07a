package mapping

import (
	"errors"
	"testing"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantFOMC string
		wantGB   string
	}{
		{
			name:     "single-part greenbook",
			filename: "fomc19920826greenbook19920819.pdf",
			wantFOMC: "19920826",
			wantGB:   "19920819",
		},
		{
			name:     "two-part greenbook",
			filename: "fomc20081216gbpt120081210.pdf",
			wantFOMC: "20081216",
			wantGB:   "20081210",
		},
		{
			name:     "tealbook A",
			filename: "fomc20100428tealbooka20100422.pdf",
			wantFOMC: "20100428",
			wantGB:   "20100422",
		},
		{
			name:     "special greenbook",
			filename: "fomc19870819gbspecial19870826.pdf",
			wantFOMC: "19870819",
			wantGB:   "19870826",
		},
		{
			name:     "upper case prefix",
			filename: "FOMC19680206greenbook19680131.pdf",
			wantFOMC: "19680206",
			wantGB:   "19680131",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseFilename(tt.filename)
			if err != nil {
				t.Fatalf("ParseFilename(%q) error: %v", tt.filename, err)
			}
			if rec.FOMCDate.String() != tt.wantFOMC {
				t.Errorf("FOMCDate = %s, want %s", rec.FOMCDate, tt.wantFOMC)
			}
			if rec.GBDate.String() != tt.wantGB {
				t.Errorf("GBDate = %s, want %s", rec.GBDate, tt.wantGB)
			}
			if rec.GBPubDate != rec.GBDate {
				t.Errorf("GBPubDate = %s, want it equal to GBDate %s", rec.GBPubDate, rec.GBDate)
			}
		})
	}
}

func TestParseFilename_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"no meeting date", "greenbook19920819.pdf"},
		{"short meeting date", "fomc1992082greenbook19920819.pdf"},
		{"no document date", "fomc19920826greenbook.pdf"},
		{"impossible meeting date", "fomc19921340greenbook19920819.pdf"},
		{"impossible document date", "fomc19920826greenbook19920231.pdf"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilename(tt.filename)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("ParseFilename(%q) error = %v, want ErrMalformedRecord", tt.filename, err)
			}
		})
	}
}

func TestParseFilenames(t *testing.T) {
	names := []string{
		"fomc19920826greenbook19920819.pdf",
		"fomc19920826greenbook19920231.pdf",
		"fomc19921006greenbook19920930.pdf",
	}

	records, errs := ParseFilenames(names)

	if len(records) != 2 {
		t.Fatalf("ParseFilenames() returned %d records, want 2", len(records))
	}
	if len(errs) != 1 {
		t.Fatalf("ParseFilenames() returned %d errors, want 1", len(errs))
	}
	if records[1].GBDate != MustParseDate("19920930") {
		t.Errorf("records kept out of order: %+v", records)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"19920826", 19920826, false},
		{"20000229", 20000229, false},
		{"19000229", 0, true},
		{"19920231", 0, true},
		{"1992082", 0, true},
		{"199208260", 0, true},
		{"1992-8-2", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_String(t *testing.T) {
	if got := Date(10203).String(); got != "00010203" {
		t.Errorf("String() = %q, want zero-padded 00010203", got)
	}
	if got := MustParseDate("19670712").String(); got != "19670712" {
		t.Errorf("String() = %q, want 19670712", got)
	}
}

func TestDate_DaysAfter(t *testing.T) {
	pub := MustParseDate("19680131")
	gb := MustParseDate("19680206")

	if got := gb.DaysAfter(pub); got != 6 {
		t.Errorf("DaysAfter() = %d, want 6", got)
	}
	if got := pub.DaysAfter(gb); got != -6 {
		t.Errorf("DaysAfter() = %d, want -6", got)
	}
}

func TestDate_Text(t *testing.T) {
	var d Date
	if err := d.UnmarshalText([]byte("19940316")); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(text) != "19940316" {
		t.Errorf("MarshalText() = %q, want 19940316", text)
	}
	if err := d.UnmarshalText([]byte("19940332")); err == nil {
		t.Error("UnmarshalText() expected error for impossible date")
	}
}
