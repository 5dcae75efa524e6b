package rbac

import "testing"

func TestMatchPathWildcardSegments(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		ok      bool
	}{
		{pattern: "/board/api/batches/*/confirm", path: "/board/api/batches/1/confirm", ok: true},
		{pattern: "/board/packages/*/label", path: "/board/packages/10/label", ok: true},
		{pattern: "/board/products/export/*", path: "/board/products/export/products.csv", ok: true},
		{pattern: "/board/admin/users", path: "/board/admin/users", ok: true},
		{pattern: "/board/admin/users", path: "/board/admin/users/1", ok: false},
		{pattern: "/board/api/batches/*/confirm", path: "/board/api/batches/1/cancel", ok: false},
	}

	for _, tc := range cases {
		if got := matchPath(tc.pattern, tc.path); got != tc.ok {
			t.Fatalf("pattern=%s path=%s expected=%v got=%v", tc.pattern, tc.path, tc.ok, got)
		}
	}
}

func TestGateTrimsUnpermittedActions(t *testing.T) {
	actions := []Action{
		{Key: "BATCHES_CONFIRM", Label: "Confirm"},
		{Key: "BATCHES_CANCEL", Label: "Cancel"},
		{Key: "BATCHES_EXPORT", Label: "Export"},
	}
	perms := map[string]int{"BATCHES_CONFIRM": 1, "BATCHES_EXPORT": 1}

	got := Gate(actions, perms)
	if len(got) != 2 || got[0].Key != "BATCHES_CONFIRM" || got[1].Key != "BATCHES_EXPORT" {
		t.Fatalf("unexpected gated actions: %v", got)
	}

	if Allowed(perms, "BATCHES_CANCEL") {
		t.Fatalf("cancel should not be allowed")
	}
	if !Allowed(perms, "BATCHES_EXPORT") {
		t.Fatalf("export should be allowed")
	}
}
