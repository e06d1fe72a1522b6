package symbols

import (
	"strings"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	table := Default()

	got := table.TierOne()
	want := []string{"S1_SOLID", "S1_LINES", "S1_DOTS"}
	if len(got) != len(want) {
		t.Fatalf("TierOne() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TierOne()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if table.MaxTier() != 10 {
		t.Errorf("MaxTier() = %d, want 10", table.MaxTier())
	}

	void, ok := table.Def("S3_VOID")
	if !ok {
		t.Fatal("S3_VOID missing")
	}
	if !void.Wildcard || !void.WindImmune {
		t.Errorf("S3_VOID flags = wildcard %v, wind_immune %v, want both true", void.Wildcard, void.WindImmune)
	}
}

func TestCheckMaxLevel(t *testing.T) {
	table := Default()

	tests := []struct {
		maxLevel int
		wantErr  bool
	}{
		{10, false},
		{12, false},
		{9, true},
		{1, true},
	}
	for _, tt := range tests {
		err := table.CheckMaxLevel(tt.maxLevel)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckMaxLevel(%d) error = %v, wantErr %v", tt.maxLevel, err, tt.wantErr)
		}
	}
}

func TestCombineIsOrderIndependent(t *testing.T) {
	table := Default()

	tests := []struct {
		a, b   string
		want   string
		wantOK bool
	}{
		{"S1_SOLID", "S1_LINES", "S2_SOLID", true},
		{"S1_LINES", "S1_SOLID", "S2_SOLID", true},
		{"S1_DOTS", "S1_SOLID", "S2_DOTS", true},
		{"S9_DOTS", "S9_SOLID", "S10_DOTS", true},
		{"S1_SOLID", "S1_SOLID", "", false},
		{"S1_SOLID", "S2_SOLID", "", false},
		{"unknown", "S1_SOLID", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.a+"+"+tc.b, func(t *testing.T) {
			got, ok := table.Combine(tc.a, tc.b)
			if ok != tc.wantOK {
				t.Fatalf("Combine(%q, %q) ok = %v, want %v", tc.a, tc.b, ok, tc.wantOK)
			}
			if ok && got.ID != tc.want {
				t.Errorf("Combine(%q, %q) = %q, want %q", tc.a, tc.b, got.ID, tc.want)
			}
		})
	}
}

func TestParseRejectsBadTables(t *testing.T) {
	header := "id,glyph,tier,source_a,source_b,wildcard,wind_immune\n"
	tests := []struct {
		name    string
		rows    string
		wantErr string
	}{
		{"no tier one", "S2_A,a,2,,,false,false\n", "no tier-1"},
		{"duplicate", "S1_A,a,1,,,false,false\nS1_A,a,1,,,false,false\n", "duplicate"},
		{"unknown source", "S1_A,a,1,,,false,false\nS2_B,b,2,S1_A,S1_Z,false,false\n", "unknown source"},
		{"half recipe", "S1_A,a,1,,,false,false\nS2_B,b,2,S1_A,,false,false\n", "two sources"},
		{"recipe clash", "S1_A,a,1,,,false,false\nS1_B,b,1,,,false,false\nS2_X,x,2,S1_A,S1_B,false,false\nS2_Y,y,2,S1_B,S1_A,false,false\n", "share recipe"},
		{"zero tier", "S1_A,a,1,,,false,false\nS0_B,b,0,,,false,false\n", "tier must be"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(header + tc.rows))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Parse error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}
