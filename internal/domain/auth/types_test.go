package auth

import "testing"

func TestIdentity_CanMutate(t *testing.T) {
	if !(Identity{UserID: "u"}).CanMutate() {
		t.Fatalf("expected regular identity to mutate")
	}
	if (Identity{UserID: "demo", Restricted: true}).CanMutate() {
		t.Fatalf("restricted identity must not mutate")
	}
}
