package database

import (
	"strings"
	"testing"
)

func TestMigrationsFS_UpDownPairs(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected embedded migration files")
	}

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
			if !names[down] {
				t.Errorf("missing down migration for %s", name)
			}
		}
	}
}

// 識別子カラムはすべてtext型であること。
// X-User-IDヘッダーの申告値は不透明な文字列のまま保存されるため、
// uuid型にすると非UUIDの識別子がINSERT時に型エラーで弾かれてしまう。
func TestMigrations_IdentifierColumnsAreText(t *testing.T) {
	users, err := migrationsFS.ReadFile("migrations/000001_create_users_table.up.sql")
	if err != nil {
		t.Fatalf("failed to read users migration: %v", err)
	}
	posts, err := migrationsFS.ReadFile("migrations/000002_create_posts_table.up.sql")
	if err != nil {
		t.Fatalf("failed to read posts migration: %v", err)
	}

	for _, column := range []string{"id text", "api_key text"} {
		if !strings.Contains(string(users), column) {
			t.Errorf("users schema: expected column %q", column)
		}
	}
	for _, column := range []string{"id text", "user_id text"} {
		if !strings.Contains(string(posts), column) {
			t.Errorf("posts schema: expected column %q", column)
		}
	}
	if strings.Contains(string(users), "uuid") || strings.Contains(string(posts), "uuid") {
		t.Error("identifier columns must not use the uuid type")
	}
}
