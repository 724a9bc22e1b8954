/*
 * Copyright © 2024 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Command rollup-publisher wires a Publisher end to end against a
// configured L1 node and database, and publishes one rollup read from
// disk. It exists to prove the module composes; it is not a production
// operator surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/alirezab22/aztec-connect/internal/config"
	"github.com/alirezab22/aztec-connect/internal/plog"
	"github.com/alirezab22/aztec-connect/internal/publisher"
	"github.com/alirezab22/aztec-connect/pkg/chainclient"
	"github.com/alirezab22/aztec-connect/pkg/metrics"
	"github.com/alirezab22/aztec-connect/pkg/rollupdb"
)

type fileConfig struct {
	Publisher config.Config `yaml:"publisher"`
	RPCURL    string        `yaml:"rpcUrl"`
	EstGas    uint64        `yaml:"estimatedGas"`
}

func main() {
	confPath := flag.String("config", "", "path to the publisher config YAML")
	rollupPath := flag.String("rollup", "", "path to a JSON-encoded Rollup to publish")
	flag.Parse()

	if *confPath == "" || *rollupPath == "" {
		fmt.Fprintln(os.Stderr, "usage: rollup-publisher -config <file> -rollup <file>")
		os.Exit(2)
	}

	ctx := context.Background()

	conf, err := loadConfig(*confPath)
	if err != nil {
		plog.L(ctx).Fatalf("failed to load config: %s", err)
	}

	rollup, err := loadRollup(*rollupPath)
	if err != nil {
		plog.L(ctx).Fatalf("failed to load rollup: %s", err)
	}

	restyClient := resty.New().SetBaseURL(conf.RPCURL)
	rpc := rpcbackend.NewRPCClient(restyClient)
	chain := chainclient.NewEthChainClient(rpc, nil)

	var db *gorm.DB // caller-configured elsewhere; nil here is a placeholder wiring point
	rollupDB := rollupdb.NewGormRollupDB(db)

	mc := metrics.NewPrometheusCollector(prometheus.DefaultRegisterer)

	pub := publisher.New(&conf.Publisher, chain, rollupDB, mc)

	outcome := pub.Publish(ctx, rollup, conf.EstGas)
	logrus.Infof("publish finished: %s", outcome)
	if outcome != publisher.Published {
		os.Exit(1)
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf fileConfig
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func loadRollup(path string) (*publisher.Rollup, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rollup publisher.Rollup
	if err := json.Unmarshal(b, &rollup); err != nil {
		return nil, err
	}
	return &rollup, nil
}
