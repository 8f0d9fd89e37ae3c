package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nspcc-dev/confrep-contract/oracle"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server (ws:// or wss://)")
	walletPath := flag.String("wallet", "", "Path to the NEP-6 wallet with the oracle account")
	walletPassword := flag.String("password", "", "Password of the oracle wallet account")
	reputationContract := flag.String("contract", "", "Address of the reputation contract (LE hex)")
	engineContract := flag.String("engine", "", "Address of the FHE engine contract (LE hex)")
	metricsEndpoint := flag.String("metrics", ":9090", "Network address to serve Prometheus metrics on, empty to disable")
	debug := flag.Bool("debug", false, "Write debug log")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing wallet path")
	case *reputationContract == "":
		log.Fatal("missing reputation contract address")
	case *engineContract == "":
		log.Fatal("missing engine contract address")
	}

	reputationAddress, err := util.Uint160DecodeStringLE(*reputationContract)
	if err != nil {
		log.Fatal(fmt.Errorf("decode reputation contract address: %w", err))
	}

	engineAddress, err := util.Uint160DecodeStringLE(*engineContract)
	if err != nil {
		log.Fatal(fmt.Errorf("decode engine contract address: %w", err))
	}

	acc, err := unlockWalletAccount(*walletPath, *walletPassword)
	if err != nil {
		log.Fatal(fmt.Errorf("unlock oracle account: %w", err))
	}

	logCfg := zap.NewProductionConfig()
	if *debug {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := logCfg.Build()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch

		l.Info("stopping on OS signal...")
		cancel()
	}()

	if *metricsEndpoint != "" {
		go serveMetrics(l, *metricsEndpoint)
	}

	b, err := newWSBlockchain(ctx, *neoRPCEndpoint)
	if err != nil {
		log.Fatal(fmt.Errorf("init remote blockchain: %w", err))
	}

	defer b.close()

	err = oracle.Run(ctx, oracle.Prm{
		Logger:             l,
		Blockchain:         b,
		LocalAccount:       acc,
		Key:                acc.PrivateKey(),
		ReputationContract: reputationAddress,
		EngineContract:     engineAddress,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal("oracle stopped", zap.Error(err))
	}

	l.Info("oracle stopped")
}

// unlockWalletAccount reads the NEP-6 wallet and decrypts its first account.
func unlockWalletAccount(path, password string) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet file: %w", err)
	}

	if len(w.Accounts) == 0 {
		return nil, errors.New("wallet has no accounts")
	}

	acc := w.Accounts[0]

	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account: %w", err)
	}

	return acc, nil
}

func serveMetrics(l *zap.Logger, endpoint string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	l.Info("serving metrics", zap.String("endpoint", endpoint))

	err := http.ListenAndServe(endpoint, mux)
	if err != nil {
		l.Error("metrics server failed", zap.Error(err))
	}
}
