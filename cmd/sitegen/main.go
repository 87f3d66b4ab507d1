// Command sitegen 在不启动 Web 服务的情况下构建、检查和导入落地页目录。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/peartree/landing/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = newRootCmd(cfg).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
