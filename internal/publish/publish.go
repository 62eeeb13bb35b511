// Package publish delivers generated scripts to an SFTP drop point so
// the operator applying them does not need shell access to the machine
// that ran the reconciliation.
package publish

import (
	"context"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/agentstation/rostersync/pkg/constants"
	pkgerrors "github.com/agentstation/rostersync/pkg/errors"
	"github.com/agentstation/rostersync/pkg/logging"
)

// Config holds SFTP connection settings.
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	RemoteDir string
}

// Uploader copies local files to the configured drop point.
type Uploader struct {
	cfg Config
}

// NewUploader validates the config and fills defaults: port 22 and the
// remote root directory.
func NewUploader(cfg Config) (*Uploader, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		return nil, pkgerrors.NewConfigError("publish", "sftp host, user and password are required", nil)
	}
	if cfg.Port <= 0 {
		cfg.Port = constants.DefaultSFTPPort
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	return &Uploader{cfg: cfg}, nil
}

// Upload copies each local file into the remote directory under its
// base name, creating the directory if needed. The connection is
// established once for the batch.
func (u *Uploader) Upload(ctx context.Context, localPaths ...string) error {
	if len(localPaths) == 0 {
		return nil
	}

	sshClient, err := u.dial(ctx)
	if err != nil {
		return err
	}
	defer sshClient.Close()

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		return pkgerrors.WrapResource("open", "sftp session", u.cfg.Host, err)
	}
	defer client.Close()

	if err := client.MkdirAll(u.cfg.RemoteDir); err != nil {
		return pkgerrors.WrapResource("create", "remote directory", u.cfg.RemoteDir, err)
	}

	for _, localPath := range localPaths {
		if err := u.uploadOne(client, localPath); err != nil {
			return err
		}
	}
	logging.Ctx(ctx).Info().
		Int("files", len(localPaths)).
		Str("host", u.cfg.Host).
		Str("remote_dir", u.cfg.RemoteDir).
		Msg("Scripts uploaded")
	return nil
}

// dial opens the SSH connection in a goroutine so the context can
// abandon a hung handshake.
func (u *Uploader) dial(ctx context.Context) (*ssh.Client, error) {
	// TODO: verify against known_hosts once the drop host publishes a
	// stable key.
	sshCfg := &ssh.ClientConfig{
		User:            u.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(u.cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         constants.DialTimeout,
	}
	addr := net.JoinHostPort(u.cfg.Host, strconv.Itoa(u.cfg.Port))

	type dialResult struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialResult, 1)
	go func() {
		client, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialResult{client: client, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, pkgerrors.WrapResource("dial", "sftp host", addr, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, pkgerrors.WrapResource("dial", "sftp host", addr, r.err)
		}
		return r.client, nil
	}
}

func (u *Uploader) uploadOne(client *sftp.Client, localPath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return pkgerrors.WrapIO("open", localPath, err)
	}
	defer src.Close()

	remotePath := path.Join(u.cfg.RemoteDir, filepath.Base(localPath))
	dst, err := client.Create(remotePath)
	if err != nil {
		return pkgerrors.WrapResource("create", "remote file", remotePath, err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return pkgerrors.WrapResource("upload", "script", remotePath, err)
	}
	logging.Debug().
		Str("local", localPath).
		Str("remote", remotePath).
		Int64("bytes", n).
		Msg("Uploaded script")
	return nil
}
