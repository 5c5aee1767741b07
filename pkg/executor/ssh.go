package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// Credentials 远程执行凭据
// Password 为空时走密钥认证（主机初始化阶段已完成 ssh-copy-id）
type Credentials struct {
	User         string
	Password     string
	BecomeMethod string
	BecomeUser   string
}

// Transport 远程执行通道，按地址建连并执行脚本
// 抽象出接口以便任务编排层在测试中替换为假实现
type Transport interface {
	// Ping 连接探测，失败视为主机不可达
	Ping(ctx context.Context, addr string, creds Credentials) error
	// Run 在远端执行脚本内容，vars 以环境变量形式注入
	// 返回标准输出、标准错误和退出码；返回 error 表示通道层故障（非脚本失败）
	Run(ctx context.Context, addr string, creds Credentials, script string, vars map[string]string) (stdout, stderr string, rc int, err error)
}

// sshTransport 基于 golang.org/x/crypto/ssh 的默认实现
type sshTransport struct {
	keyFile string
	timeout time.Duration
}

// NewSSHTransport 创建SSH执行通道
// keyFile 为本机私钥路径，留空则使用 ~/.ssh/id_rsa
func NewSSHTransport(keyFile string, timeout time.Duration) Transport {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &sshTransport{keyFile: keyFile, timeout: timeout}
}

func (t *sshTransport) Ping(ctx context.Context, addr string, creds Credentials) error {
	client, err := t.connect(ctx, addr, creds)
	if err != nil {
		return err
	}
	return client.Close()
}

func (t *sshTransport) Run(ctx context.Context, addr string, creds Credentials, script string, vars map[string]string) (string, string, int, error) {
	client, err := t.connect(ctx, addr, creds)
	if err != nil {
		return "", "", -1, err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", "", -1, err
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr
	session.Stdin = strings.NewReader(buildScript(script, vars))

	cmd := "sh -s"
	if creds.BecomeMethod == "sudo" {
		becomeUser := creds.BecomeUser
		if becomeUser == "" {
			becomeUser = "root"
		}
		cmd = fmt.Sprintf("sudo -u %s sh -s", becomeUser)
	}

	// 会话本身不感知 context，超时由上层取消后强制断开连接兜底
	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmd)
	}()

	select {
	case <-ctx.Done():
		_ = client.Close()
		return "", "", -1, ctx.Err()
	case err = <-done:
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			// 脚本退出码非零不是通道故障，交由调用方归入失败分区
			return stdout.String(), stderr.String(), exitErr.ExitStatus(), nil
		}
		return stdout.String(), stderr.String(), -1, err
	}
	return stdout.String(), stderr.String(), 0, nil
}

func (t *sshTransport) connect(ctx context.Context, addr string, creds Credentials) (*ssh.Client, error) {
	config := &ssh.ClientConfig{
		User:    creds.User,
		Auth:    t.authMethods(creds),
		Timeout: t.timeout,
		Config: ssh.Config{
			Ciphers: []string{"aes128-ctr", "aes192-ctr", "aes256-ctr", "aes128-gcm@openssh.com"},
		},
		HostKeyCallback: func(hostname string, remote net.Addr, key ssh.PublicKey) error {
			return nil
		},
	}

	dialer := net.Dialer{Timeout: t.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", reformatAddr(addr))
	if err != nil {
		return nil, err
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

func (t *sshTransport) authMethods(creds Credentials) []ssh.AuthMethod {
	var auth []ssh.AuthMethod
	if am, err := t.privateKeyMethod(); err == nil {
		auth = append(auth, am)
	}
	if creds.Password != "" {
		auth = append(auth, ssh.Password(creds.Password))
	}
	return auth
}

func (t *sshTransport) privateKeyMethod() (ssh.AuthMethod, error) {
	keyFile := t.keyFile
	if keyFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		keyFile = filepath.Join(home, ".ssh", "id_rsa")
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		return nil, err
	}
	return ssh.PublicKeys(signer), nil
}

// buildScript 在脚本前注入变量导出语句
func buildScript(script string, vars map[string]string) string {
	if len(vars) == 0 {
		return script
	}
	var b strings.Builder
	for k, v := range vars {
		b.WriteString(fmt.Sprintf("export %s=%s\n", k, shellQuote(v)))
	}
	b.WriteString(script)
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func reformatAddr(addr string) string {
	if !strings.Contains(addr, ":") {
		return addr + ":22"
	}
	return addr
}
