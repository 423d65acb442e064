package shell

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	rootassets "github.com/doeshing/kittysh/assets"
	"github.com/doeshing/kittysh/internal/domain"
	"github.com/doeshing/kittysh/internal/pkg/filesystem"
	"github.com/doeshing/kittysh/internal/ports"
)

// Installer handles shell integration deployment.
type Installer struct {
	logger ports.Logger
	home   string
	getenv func(string) string
}

// NewInstaller builds a shell installer bound to the current user's environment.
func NewInstaller(logger ports.Logger) *Installer {
	return NewInstallerWithEnv(logger, filesystem.UserHomeDir(), os.Getenv)
}

// NewInstallerWithEnv builds an installer using the given home directory and
// environment lookup.
func NewInstallerWithEnv(logger ports.Logger, home string, getenv func(string) string) *Installer {
	return &Installer{logger: logger, home: home, getenv: getenv}
}

// Setup installs integration for one shell. Errors are returned unhandled.
func (i *Installer) Setup(shell domain.ShellName, cfg domain.Config) (domain.ShellInstallResult, error) {
	if cfg.IntegrationDir == "" {
		return domain.ShellInstallResult{Shell: shell}, errors.New("shell integration directory is not configured")
	}
	switch shell {
	case domain.ShellZsh:
		return i.setupZsh(cfg.IntegrationDir)
	case domain.ShellBash:
		return i.setupBash(cfg.IntegrationDir)
	case domain.ShellFish:
		return i.setupFish(cfg.IntegrationDir)
	default:
		return domain.ShellInstallResult{Shell: shell}, fmt.Errorf("%w: %s", domain.ErrUnsupportedShell, shell)
	}
}

func (i *Installer) setupZsh(integrationDir string) (domain.ShellInstallResult, error) {
	return i.setupIntegration(domain.ShellZsh, i.zshrcPath(), PosixTemplate, integrationDir)
}

func (i *Installer) setupBash(integrationDir string) (domain.ShellInstallResult, error) {
	return i.setupIntegration(domain.ShellBash, i.bashrcPath(), PosixTemplate, integrationDir)
}

// setupIntegration rewrites the marker block of rcPath and skips the write
// when nothing changed.
func (i *Installer) setupIntegration(shell domain.ShellName, rcPath, template, integrationDir string) (domain.ShellInstallResult, error) {
	rcPath = filesystem.ResolvePath(rcPath)
	scriptPath := scriptPathFor(shell, integrationDir)
	result := domain.ShellInstallResult{Shell: shell, ScriptPath: scriptPath, RCFile: rcPath}

	rc, err := filesystem.ReadFileOrEmpty(rcPath)
	if err != nil {
		return result, err
	}
	newrc := InjectStanza(rc, template, FriendlyPath(scriptPath, i.home))
	if newrc == rc {
		i.logger.Debug("rc file already up to date", map[string]interface{}{"shell": shell, "rc": rcPath})
		return result, nil
	}
	if err := filesystem.WriteFileAtomic(rcPath, []byte(newrc)); err != nil {
		return result, err
	}
	result.RCUpdated = true
	i.logger.Info("updated rc file", map[string]interface{}{"shell": shell, "rc": rcPath})
	return result, nil
}

func (i *Installer) setupFish(integrationDir string) (domain.ShellInstallResult, error) {
	base := i.fishConfigDir()
	scriptPath := scriptPathFor(domain.ShellFish, integrationDir)
	result := domain.ShellInstallResult{Shell: domain.ShellFish, ScriptPath: scriptPath}

	link, err := i.linkOrCopy(scriptPath, filepath.Join(base, "conf.d"))
	if err != nil {
		return result, err
	}
	result.RCFile = link
	result.Linked = true

	completionPath := filepath.Join(base, "completions", "kitty.fish")
	updated, err := ensureFileContent(completionPath, rootassets.FishCompletion)
	if err != nil {
		return result, err
	}
	result.Completion = updated
	return result, nil
}

// linkOrCopy symlinks script into dir, copying it atomically when the
// filesystem cannot hold symlinks.
func (i *Installer) linkOrCopy(script, dir string) (string, error) {
	link, err := filesystem.SymlinkAtomic(script, dir)
	if err == nil {
		return link, nil
	}
	if !filesystem.IsSymlinkUnsupported(err) {
		return "", err
	}
	i.logger.Warn("symlinks unsupported, copying integration script", map[string]interface{}{"script": script, "dir": dir})
	data, readErr := os.ReadFile(script)
	if readErr != nil {
		return "", fmt.Errorf("copy integration script: %w", readErr)
	}
	dest := filepath.Join(dir, filepath.Base(script))
	if err := filesystem.WriteFileAtomic(dest, data); err != nil {
		return "", err
	}
	return dest, nil
}

// ensureFileContent writes content to path only when it differs from what is
// on disk, creating the parent directory as needed.
func ensureFileContent(path, content string) (bool, error) {
	current, err := filesystem.ReadFileOrEmpty(path)
	if err != nil {
		return false, err
	}
	if current == content {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := filesystem.WriteFileAtomic(path, []byte(content)); err != nil {
		return false, err
	}
	return true, nil
}

// Uninstall removes the marker block (bash, zsh) or the conf.d link and
// completion file (fish). Files that were never installed are left alone.
func (i *Installer) Uninstall(shell domain.ShellName, cfg domain.Config) (domain.ShellInstallResult, error) {
	result := domain.ShellInstallResult{Shell: shell, ScriptPath: scriptPathFor(shell, cfg.IntegrationDir)}
	switch shell {
	case domain.ShellZsh, domain.ShellBash:
		rcPath := filesystem.ResolvePath(i.rcPathFor(shell))
		result.RCFile = rcPath
		rc, err := filesystem.ReadFileOrEmpty(rcPath)
		if err != nil {
			return result, err
		}
		newrc, removed := RemoveStanza(rc)
		if !removed {
			return result, nil
		}
		if err := filesystem.WriteFileAtomic(rcPath, []byte(newrc)); err != nil {
			return result, err
		}
		result.RCUpdated = true
		return result, nil
	case domain.ShellFish:
		base := i.fishConfigDir()
		link := filepath.Join(base, "conf.d", "kitty.fish")
		result.RCFile = link
		if installedFishScript(link, result.ScriptPath) {
			removed, err := removeIfPresent(link)
			if err != nil {
				return result, err
			}
			result.RCUpdated = removed
		} else {
			i.logger.Debug("leaving foreign conf.d entry in place", map[string]interface{}{"path": link})
		}
		completionPath := filepath.Join(base, "completions", "kitty.fish")
		if current, err := filesystem.ReadFileOrEmpty(completionPath); err == nil && current == rootassets.FishCompletion {
			if _, err := removeIfPresent(completionPath); err != nil {
				return result, err
			}
			result.Completion = true
		}
		return result, nil
	default:
		return result, fmt.Errorf("%w: %s", domain.ErrUnsupportedShell, shell)
	}
}

// Status reports current integration state.
func (i *Installer) Status(shell domain.ShellName, cfg domain.Config) domain.ShellStatus {
	status := domain.ShellStatus{Shell: shell}
	if !shell.IsSupported() {
		status.Error = domain.ErrUnsupportedShell.Error()
		return status
	}
	if cfg.IntegrationDir != "" {
		status.ScriptPath = scriptPathFor(shell, cfg.IntegrationDir)
		if info, err := os.Stat(status.ScriptPath); err == nil && info.Mode().IsRegular() {
			status.ScriptExists = true
		}
	}

	if shell == domain.ShellFish {
		base := i.fishConfigDir()
		status.RCFile = filepath.Join(base, "conf.d", "kitty.fish")
		status.CompletionFile = filepath.Join(base, "completions", "kitty.fish")
		status.BlockPresent = installedFishScript(status.RCFile, status.ScriptPath)
		return status
	}

	status.RCFile = filesystem.ResolvePath(i.rcPathFor(shell))
	rc, err := filesystem.ReadFileOrEmpty(status.RCFile)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.BlockPresent = HasStanza(rc)
	return status
}

func (i *Installer) rcPathFor(shell domain.ShellName) string {
	if shell == domain.ShellZsh {
		return i.zshrcPath()
	}
	return i.bashrcPath()
}

func (i *Installer) bashrcPath() string {
	return filepath.Join(i.home, ".bashrc")
}

func (i *Installer) zshrcPath() string {
	base := i.getenv("ZDOTDIR")
	if base == "" {
		base = i.home
	}
	return filepath.Join(base, ".zshrc")
}

func (i *Installer) fishConfigDir() string {
	base := i.getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(i.home, ".config")
	}
	return filepath.Join(base, "fish")
}

func scriptPathFor(shell domain.ShellName, integrationDir string) string {
	if integrationDir == "" {
		return ""
	}
	return filepath.Join(integrationDir, "kitty."+string(shell))
}

// installedFishScript reports whether entry is the link to script made by
// setup, or the copy left in its place where symlinks are unsupported.
func installedFishScript(entry, script string) bool {
	if script == "" {
		return false
	}
	info, err := os.Lstat(entry)
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(entry)
		return err == nil && target == script
	}
	if !info.Mode().IsRegular() {
		return false
	}
	installed, err := os.ReadFile(entry)
	if err != nil {
		return false
	}
	want, err := os.ReadFile(script)
	return err == nil && bytes.Equal(installed, want)
}

func removeIfPresent(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	return true, nil
}

var _ ports.ShellIntegrator = (*Installer)(nil)
