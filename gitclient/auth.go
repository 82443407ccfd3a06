package gitclient

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	sshconfig "github.com/kevinburke/ssh_config"
)

var sshConfigGet = func(alias, key string) string {
	return sshconfig.Get(alias, key)
}

var sshConfigGetAll = func(alias, key string) []string {
	return sshconfig.GetAll(alias, key)
}

var defaultIdentityFiles = []string{
	"~/.ssh/id_ed25519",
	"~/.ssh/id_ecdsa",
	"~/.ssh/id_rsa",
	"~/.ssh/id_dsa",
}

// remoteAuth describes how to authenticate against one remote. Non-ssh
// remotes get a nil method and rely on go-git defaults.
type remoteAuth struct {
	endpoint  *transport.Endpoint
	url       string
	method    transport.AuthMethod
	fromAgent bool
}

// run calls op with the resolved auth. When the ssh agent was used and the
// server rejected it, op is retried once with key files from ~/.ssh.
func (a remoteAuth) run(op func(transport.AuthMethod) error) error {
	err := op(a.method)
	if err == nil || !a.fromAgent || !isSSHAuthFailure(err) {
		return err
	}
	fallback, ferr := keyFileAuth(a.endpoint, a.url)
	if ferr != nil {
		return err
	}
	return op(fallback)
}

func (c *Client) resolveAuth(remoteName string) (remoteAuth, error) {
	remote, err := c.repo.Remote(remoteName)
	if err != nil {
		return remoteAuth{}, err
	}
	cfg := remote.Config()
	if cfg == nil || len(cfg.URLs) == 0 {
		return remoteAuth{}, fmt.Errorf("remote %q has no URL", remoteName)
	}
	url := strings.TrimSpace(cfg.URLs[0])
	endpoint, err := transport.NewEndpoint(url)
	if err != nil {
		return remoteAuth{url: url}, err
	}
	auth := remoteAuth{endpoint: endpoint, url: url}
	if !isSSHEndpoint(endpoint) {
		return auth, nil
	}
	user := sshUser(endpoint)
	if agent, err := gitssh.NewSSHAgentAuth(user); err == nil {
		auth.method = agent
		auth.fromAgent = true
		return auth, nil
	}
	method, err := keyFileAuthForUser(endpoint.Host, user, url)
	if err != nil {
		return auth, err
	}
	auth.method = method
	return auth, nil
}

func isSSHEndpoint(endpoint *transport.Endpoint) bool {
	if endpoint == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(endpoint.Protocol)) {
	case "ssh", "git+ssh", "ssh+git":
		return true
	default:
		return false
	}
}

func sshUser(endpoint *transport.Endpoint) string {
	user := strings.TrimSpace(endpoint.User)
	if user == "" {
		user = strings.TrimSpace(sshConfigGet(endpoint.Host, "User"))
	}
	if user == "" {
		user = "git"
	}
	return user
}

func keyFileAuth(endpoint *transport.Endpoint, url string) (transport.AuthMethod, error) {
	if endpoint == nil {
		return nil, fmt.Errorf("no endpoint for %q", url)
	}
	return keyFileAuthForUser(endpoint.Host, sshUser(endpoint), url)
}

func keyFileAuthForUser(host string, user string, url string) (transport.AuthMethod, error) {
	var errs []string
	for _, keyPath := range identityFiles(host, user) {
		auth, err := gitssh.NewPublicKeysFromFile(user, keyPath, "")
		if err == nil {
			return auth, nil
		}
		errs = append(errs, fmt.Sprintf("%s: %v", keyPath, err))
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("unable to configure ssh auth for %q; no usable keys found", url)
	}
	return nil, fmt.Errorf("unable to configure ssh auth for %q: %s", url, strings.Join(errs, "; "))
}

func isSSHAuthFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	return strings.Contains(msg, "unable to authenticate") ||
		strings.Contains(msg, "attempted methods") ||
		strings.Contains(msg, "permission denied (publickey)")
}

// identityFiles lists existing key files: IdentityFile entries from
// ~/.ssh/config first, then the usual defaults.
func identityFiles(host string, remoteUser string) []string {
	fromConfig := sshConfigGetAll(host, "IdentityFile")
	out := make([]string, 0, len(fromConfig)+len(defaultIdentityFiles))
	seen := make(map[string]struct{}, cap(out))

	consider := func(candidate string) {
		path := expandIdentityPath(candidate, host, remoteUser)
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	for _, candidate := range fromConfig {
		consider(candidate)
	}
	for _, candidate := range defaultIdentityFiles {
		consider(candidate)
	}
	return out
}

// expandIdentityPath applies the ssh_config tokens %h %r %u %% and resolves
// relative paths against ~/.ssh.
func expandIdentityPath(raw string, host string, remoteUser string) string {
	path := strings.Trim(strings.TrimSpace(raw), `"'`)
	if path == "" || strings.EqualFold(path, "none") {
		return ""
	}
	path = strings.ReplaceAll(path, "%h", host)
	path = strings.ReplaceAll(path, "%r", remoteUser)
	if localUser := strings.TrimSpace(os.Getenv("USER")); localUser != "" {
		path = strings.ReplaceAll(path, "%u", localUser)
	}
	path = strings.ReplaceAll(path, "%%", "%")

	if strings.HasPrefix(path, "~/") || !filepath.IsAbs(path) {
		home, err := os.UserHomeDir()
		if err != nil || strings.TrimSpace(home) == "" {
			return ""
		}
		if strings.HasPrefix(path, "~/") {
			path = filepath.Join(home, path[2:])
		} else {
			path = filepath.Join(home, ".ssh", path)
		}
	}
	return filepath.Clean(path)
}
