// Package update implements self-updating from GitHub release assets:
// resolve the target version, download the platform archive, verify
// its sha256 sidecar and atomically replace the running binary.
package update

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/logging"
)

const (
	// DefaultRepo is the GitHub repo slug releases are fetched from.
	DefaultRepo = "workhelix/prompter"

	// BinaryName is the file installed from the release archive.
	BinaryName = "prompter"

	userAgent = "prompter-updater"
)

// Outcome describes how an update attempt ended.
type Outcome int

const (
	// OutcomeUpdated means a new binary was installed.
	OutcomeUpdated Outcome = iota
	// OutcomeUpToDate means the running version already matches the target.
	OutcomeUpToDate
	// OutcomeCancelled means the user declined the confirmation prompt.
	OutcomeCancelled
)

// Options defines the options for the Run command.
type Options struct {
	// Version pins a target version; empty means latest.
	Version string
	// Force skips the confirmation prompt and the up-to-date check.
	Force bool
	// InstallDir overrides the install location; empty means the
	// running executable's path.
	InstallDir string
	// Repo is the GitHub repo slug; empty means DefaultRepo.
	Repo string
	// CurrentVersion is the running version, without a v prefix.
	CurrentVersion string
	// Confirm is called before installing unless Force is set. A nil
	// Confirm declines.
	Confirm func(prompt string) bool
}

// Deps groups the environment an update touches, injectable in tests.
type Deps struct {
	HTTPClient *http.Client
	Goos       string
	Goarch     string
}

// DefaultDeps returns the dependencies used by the CLI.
func DefaultDeps() Deps {
	return Deps{
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
		Goos:       runtime.GOOS,
		Goarch:     runtime.GOARCH,
	}
}

// Swappable seams for tests
var (
	latestVersionFn = LatestVersion
	installFn       = install
)

// Run checks for, confirms and installs an update. Progress messages
// go to out.
func Run(ctx context.Context, opts Options, deps Deps, out io.Writer) (Outcome, error) {
	log := logging.GetLogger("commands.update")

	repo := opts.Repo
	if repo == "" {
		repo = DefaultRepo
	}

	fmt.Fprintln(out, "🔄 Checking for updates...")

	target := opts.Version
	if target == "" {
		latest, err := latestVersionFn(ctx, deps.HTTPClient, repo)
		if err != nil {
			return 0, errors.Wrap(err, errors.ErrUpdateCheck, "Failed to check for updates")
		}
		target = latest
	}
	target = strings.TrimPrefix(target, "v")

	if target == opts.CurrentVersion && !opts.Force {
		fmt.Fprintf(out, "✅ Already running latest version (v%s)\n", opts.CurrentVersion)
		return OutcomeUpToDate, nil
	}

	fmt.Fprintf(out, "✨ Update available: v%s (current: v%s)\n", target, opts.CurrentVersion)

	installPath, err := resolveInstallPath(opts.InstallDir)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(out, "📍 Install location: %s\n\n", installPath)

	if !opts.Force {
		if opts.Confirm == nil || !opts.Confirm("Continue with update? [y/N]: ") {
			fmt.Fprintln(out, "Update cancelled.")
			return OutcomeCancelled, nil
		}
	}

	if err := installFn(ctx, deps, out, repo, target, installPath); err != nil {
		return 0, err
	}

	log.Info().Str("version", target).Str("path", installPath).Msg("Update installed")
	fmt.Fprintf(out, "✅ Successfully updated to v%s\n\n", target)
	fmt.Fprintf(out, "Run '%s --version' to verify the installation.\n", BinaryName)
	return OutcomeUpdated, nil
}

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// LatestVersion returns the newest released version for repo, with
// any "prompter-v" or "v" tag prefix stripped.
func LatestVersion(ctx context.Context, client *http.Client, repo string) (string, error) {
	if client == nil {
		return "", errors.New(errors.ErrInternal, "nil http client")
	}
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", repo)
	body, err := fetchURL(ctx, client, url)
	if err != nil {
		return "", err
	}
	var release githubRelease
	if err := json.Unmarshal(body, &release); err != nil {
		return "", errors.Wrap(err, errors.ErrUpdateCheck, "Failed to decode release response")
	}
	tag := strings.TrimSpace(release.TagName)
	if tag == "" {
		return "", errors.New(errors.ErrUpdateCheck, "No tag_name in release response")
	}
	tag = strings.TrimPrefix(tag, BinaryName+"-v")
	return strings.TrimPrefix(tag, "v"), nil
}

// PlatformString maps a goos/goarch pair onto the release asset
// platform triple.
func PlatformString(goos, goarch string) string {
	switch goos + "/" + goarch {
	case "darwin/amd64":
		return "x86_64-apple-darwin"
	case "darwin/arm64":
		return "aarch64-apple-darwin"
	case "linux/amd64":
		return "x86_64-unknown-linux-gnu"
	case "linux/arm64":
		return "aarch64-unknown-linux-gnu"
	case "windows/amd64":
		return "x86_64-pc-windows-msvc"
	default:
		return "unknown"
	}
}

// AssetName returns the downloadable archive name for a platform.
// Windows releases ship as zip, which the updater does not handle.
func AssetName(goos, goarch string) (string, error) {
	if goos == "windows" {
		return "", errors.New(errors.ErrUpdateInstall, "Windows update not supported, download manually")
	}
	return fmt.Sprintf("%s-%s.tar.gz", BinaryName, PlatformString(goos, goarch)), nil
}

func resolveInstallPath(installDir string) (string, error) {
	if installDir != "" {
		return filepath.Join(installDir, BinaryName), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrUpdateInstall, "Failed to determine binary location")
	}
	return exe, nil
}

func install(ctx context.Context, deps Deps, out io.Writer, repo, version, installPath string) error {
	assetName, err := AssetName(deps.Goos, deps.Goarch)
	if err != nil {
		return err
	}
	downloadURL := fmt.Sprintf("https://github.com/%s/releases/download/%s-v%s/%s",
		repo, BinaryName, version, assetName)

	fmt.Fprintf(out, "📥 Downloading %s...\n", assetName)
	archive, err := fetchURL(ctx, deps.HTTPClient, downloadURL)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUpdateDownload, "Download failed for %s", assetName)
	}

	checksum, err := fetchURL(ctx, deps.HTTPClient, downloadURL+".sha256")
	if err != nil {
		fmt.Fprintln(out, "⚠️  Checksum file not available, skipping verification")
	} else {
		fmt.Fprintln(out, "🔐 Verifying checksum...")
		if err := VerifySHA256(archive, string(checksum)); err != nil {
			return err
		}
		fmt.Fprintln(out, "✅ Checksum verified")
	}

	fmt.Fprintln(out, "📦 Installing...")
	binary, err := ExtractBinary(archive)
	if err != nil {
		return err
	}
	if err := writeBinaryAtomic(installPath, binary); err != nil {
		if os.IsPermission(err) || errors.IsErrorCode(err, errors.ErrUpdateInstall) {
			return errors.Wrapf(err, errors.ErrUpdateInstall,
				"Permission denied. Try running with sudo or use --install-dir to specify a writable location")
		}
		return err
	}
	return nil
}

// VerifySHA256 checks data against the hex digest in the first field
// of a checksum file body.
func VerifySHA256(data []byte, checksumText string) error {
	fields := strings.Fields(checksumText)
	if len(fields) == 0 {
		return errors.New(errors.ErrUpdateVerify, "Invalid checksum format")
	}
	expected := fields[0]
	sum := sha256.Sum256(data)
	actual := hex.EncodeToString(sum[:])
	if !strings.EqualFold(actual, expected) {
		return errors.Newf(errors.ErrUpdateVerify,
			"Checksum verification failed!\nExpected: %s\nActual:   %s", expected, actual)
	}
	return nil
}

// ExtractBinary pulls the prompter binary out of a tar.gz archive body.
func ExtractBinary(archive []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpdateInstall, "Failed to read archive")
	}
	defer func() { _ = gr.Close() }()

	tr := tar.NewReader(gr)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrUpdateInstall, "Failed to read archive")
		}
		if h.Typeflag != tar.TypeReg {
			continue
		}
		if filepath.Base(h.Name) != BinaryName {
			continue
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrUpdateInstall, "Failed to read archive")
		}
		return body, nil
	}
	return nil, errors.Newf(errors.ErrUpdateInstall, "Binary not found in archive: %s", BinaryName)
}

// writeBinaryAtomic installs body at target via a temp file rename,
// preserving an existing binary's mode.
func writeBinaryAtomic(target string, body []byte) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrUpdateInstall, "Failed to create %s", dir)
	}
	mode := os.FileMode(0o755)
	if st, err := os.Stat(target); err == nil {
		mode = st.Mode().Perm()
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.tmp.%d", filepath.Base(target), os.Getpid()))
	if err := os.WriteFile(tmpPath, body, mode); err != nil {
		return errors.Wrapf(err, errors.ErrUpdateInstall, "Failed to write %s", tmpPath)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrUpdateInstall, "Failed to install %s", target)
	}
	return nil
}

func fetchURL(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpdateDownload, "Failed to build request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUpdateDownload, "Request failed for %s", url)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf(errors.ErrUpdateDownload, "Request failed: %s (HTTP %s)", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUpdateDownload, "Request failed for %s", url)
	}
	return body, nil
}
