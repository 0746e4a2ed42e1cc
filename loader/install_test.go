package loader

import "testing"

func resetInstall(t *testing.T) {
	t.Helper()
	installMu.Lock()
	installed = nil
	bundleDetector = func() bool { return false }
	installMu.Unlock()
}

func TestInstallIsOneTime(t *testing.T) {
	resetInstall(t)
	first := newTestLoader(t, t.TempDir())
	second := newTestLoader(t, t.TempDir())

	if !Install(first) {
		t.Fatalf("first Install should succeed")
	}
	if Install(second) {
		t.Fatalf("second Install should be refused")
	}
	if Default() != Resolver(first) {
		t.Fatalf("Default should keep returning the first loader")
	}
	if !Installed() {
		t.Fatalf("Installed should report true")
	}
}

func TestInstallSkippedForBundledBuilds(t *testing.T) {
	resetInstall(t)
	installMu.Lock()
	bundleDetector = func() bool { return true }
	installMu.Unlock()

	if Install(newTestLoader(t, t.TempDir())) {
		t.Fatalf("Install must be skipped when the binary carries a bundle")
	}
	if Installed() {
		t.Fatalf("no loader should be installed for bundled builds")
	}
}

func TestInstallRejectsNil(t *testing.T) {
	resetInstall(t)
	if Install(nil) {
		t.Fatalf("Install(nil) should be a no-op")
	}
}
