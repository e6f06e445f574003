// Copyright 2026 The zsetd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command zsetd-server is the RESP2 front door: it loads configuration,
// builds a ZSetDB instance, and serves ZSET commands over TCP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/tidwall/resp"

	"github.com/coreshard/zsetd/internal"
	"github.com/coreshard/zsetd/internal/config"
	"github.com/coreshard/zsetd/internal/constants"
	"github.com/coreshard/zsetd/internal/zset"
	"github.com/coreshard/zsetd/zsetdb"
)

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if conf.MaxPackedEntries > 0 {
		zset.MaxPackedEntries = conf.MaxPackedEntries
	}
	if conf.MaxPackedValue > 0 {
		zset.MaxPackedValue = conf.MaxPackedValue
	}

	log.Printf("zsetd %s starting with %d shard(s)", constants.Version, conf.Shards)

	db := zsetdb.New(conf)

	if err := serve(conf, db); err != nil {
		log.Fatal(err)
	}
}

func serve(conf config.Config, db *zsetdb.ZSetDB) error {
	listenConfig := net.ListenConfig{KeepAlive: 200 * time.Millisecond}
	listener, err := listenConfig.Listen(context.Background(), "tcp", fmt.Sprintf("%s:%d", conf.BindAddr, conf.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer listener.Close()

	log.Printf("listening on %s:%d", conf.BindAddr, conf.Port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			var netErr net.Error
			// Accept errors that report Timeout() are retried with backoff,
			// calling Accept again, instead of taking the whole listener down;
			// mirrors the teacher's RetryBackoff usage for transient connection
			// failures. Once the retries run out, or on any other accept error,
			// serve returns.
			if errors.As(err, &netErr) && netErr.Timeout() {
				backoff := internal.RetryBackoff(retry.NewFibonacci(50*time.Millisecond), 5, 20*time.Millisecond, time.Second, 0)
				if rerr := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
					c, aerr := listener.Accept()
					if aerr != nil {
						if errors.As(aerr, &netErr) && netErr.Timeout() {
							return retry.RetryableError(aerr)
						}
						return aerr
					}
					conn = c
					return nil
				}); rerr != nil {
					return fmt.Errorf("accept: %w", rerr)
				}
				go handleConnection(conn, db)
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		go handleConnection(conn, db)
	}
}

func handleConnection(conn net.Conn, db *zsetdb.ZSetDB) {
	defer func() {
		if err := conn.Close(); err != nil {
			log.Println(err)
		}
	}()

	r := resp.NewReader(conn)
	for {
		cmd, err := internal.DecodeCommand(r)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Println(err)
			}
			return
		}
		if len(cmd) == 0 {
			continue
		}

		reply, err := db.Dispatch(cmd)
		if err != nil {
			reply = internal.WriteError(err)
		}
		if _, err := conn.Write(reply); err != nil {
			log.Println(err)
			return
		}
	}
}
