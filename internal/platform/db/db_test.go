package db

import "testing"

func TestDialectOf(t *testing.T) {
	tests := []struct {
		url  string
		want Dialect
	}{
		{"postgres://user:pw@localhost:5432/app", Postgres},
		{"postgresql://localhost/app", Postgres},
		{"data/app.db", SQLite},
		{":memory:", SQLite},
	}

	for _, tc := range tests {
		if got := DialectOf(tc.url); got != tc.want {
			t.Errorf("DialectOf(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestRebind(t *testing.T) {
	q := "INSERT INTO places (name, address) VALUES (?, ?)"

	if got := Rebind(SQLite, q); got != q {
		t.Fatalf("sqlite rebind = %q, want unchanged", got)
	}
	want := "INSERT INTO places (name, address) VALUES ($1, $2)"
	if got := Rebind(Postgres, q); got != want {
		t.Fatalf("postgres rebind = %q, want %q", got, want)
	}
}

func TestOpenInMemorySQLite(t *testing.T) {
	conn, dialect, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	if dialect != SQLite {
		t.Fatalf("dialect = %q, want sqlite", dialect)
	}
}
