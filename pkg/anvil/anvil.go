// Package anvil runs a throwaway local anvil node for integration tests.
package anvil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	// DefaultChainID is anvil's chain ID when none is given
	DefaultChainID = 31337

	startupTimeout = 10 * time.Second
	stopTimeout    = 5 * time.Second
)

// ErrNotInstalled is returned when the anvil binary is not on PATH
var ErrNotInstalled = errors.New("anvil is not installed")

// Node is a running anvil process
type Node struct {
	Port    int
	ChainID uint64

	cmd  *exec.Cmd
	logs bytes.Buffer
	done chan struct{}
}

// Available reports whether the anvil binary can be found
func Available() bool {
	_, err := exec.LookPath("anvil")
	return err == nil
}

// Start launches anvil on a free port and waits until it answers eth_chainId
func Start(ctx context.Context, chainID uint64) (*Node, error) {
	if !Available() {
		return nil, ErrNotInstalled
	}
	if chainID == 0 {
		chainID = DefaultChainID
	}

	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("failed to find a free port: %w", err)
	}

	node := &Node{
		Port:    port,
		ChainID: chainID,
		done:    make(chan struct{}),
	}
	node.cmd = exec.Command("anvil",
		"--port", strconv.Itoa(port),
		"--chain-id", strconv.FormatUint(chainID, 10),
		"--silent",
	)
	node.cmd.Stdout = &node.logs
	node.cmd.Stderr = &node.logs

	if err := node.cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}
	go func() {
		_ = node.cmd.Wait()
		close(node.done)
	}()

	if err := node.waitReady(ctx); err != nil {
		_ = node.Stop()
		return nil, err
	}

	return node, nil
}

// RPCURL returns the node's HTTP endpoint
func (n *Node) RPCURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", n.Port)
}

// Stop terminates the node, killing it if SIGTERM is not honoured in time
func (n *Node) Stop() error {
	if err := n.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		if err := n.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("failed to kill anvil: %w", err)
		}
	}

	select {
	case <-n.done:
	case <-time.After(stopTimeout):
		_ = n.cmd.Process.Kill()
		<-n.done
	}
	return nil
}

func (n *Node) waitReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-n.done:
			return fmt.Errorf("anvil exited during startup: %s", n.logs.String())
		case <-ctx.Done():
			return fmt.Errorf("anvil did not become ready: %w", ctx.Err())
		case <-ticker.C:
			if n.healthy(ctx) {
				return nil
			}
		}
	}
}

func (n *Node) healthy(ctx context.Context) bool {
	client, err := ethclient.DialContext(ctx, n.RPCURL())
	if err != nil {
		return false
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	return err == nil && id.Uint64() == n.ChainID
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
