package systems

import "testing"

func TestDangerHighlight(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		minLvl  int
		resultX float64
		want    int
	}{
		{"result nearby", true, 1, 200, 3},
		{"result far away", true, 1, 1000, 0},
		{"below min level", true, 2, 200, 0},
		{"disabled", false, 1, 200, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, cfg := newTestScene(t)
			cfg.Danger.Enabled = tc.enabled
			cfg.Danger.MinLevel = tc.minLvl
			place(t, sc, "S1_SOLID", 100, 100, 0, 0)
			place(t, sc, "S1_LINES", 150, 100, 0, 0)
			place(t, sc, "S2_SOLID", tc.resultX, 100, 0, 0)
			toks := sc.Tokens.Snapshot()
			toks[0].State.Danger = true // Stale flag from a previous tick

			got := NewDangerHighlighter().Update(toks, cfg, sc.Table)
			if got != tc.want {
				t.Errorf("flagged = %d, want %d", got, tc.want)
			}
			for _, tok := range toks {
				if tok.State.Danger != (tc.want > 0) {
					t.Errorf("%s danger = %v", tok.Sym.ID, tok.State.Danger)
				}
			}
		})
	}
}
