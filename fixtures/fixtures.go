// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test set up
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/keypair"
	"github.com/bitmark-inc/tellit/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// SetupTestLogger - log only critical messages to a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// SetupTestStorage - logger plus an empty database in the scratch
// directory
func SetupTestStorage() error {
	SetupTestLogger()
	return storage.Initialise(filepath.Join(dir, "test.leveldb"), storage.ReadWrite)
}

// TeardownTestStorage - close the database and remove everything
func TeardownTestStorage() {
	storage.Finalise()
	TeardownTestLogger()
}

// MustKeyPair - a fresh key pair, panics on failure
func MustKeyPair() *keypair.KeyPair {
	kp, err := keypair.New()
	if nil != err {
		panic(err)
	}
	return kp
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Certificate - a fresh self signed certificate and private key for
// localhost, both PEM encoded
func Certificate() (string, string) {
	validUntil := time.Now().Add(24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair("tellitd test certificate", validUntil, false, []string{"127.0.0.1", "localhost"})
	if nil != err {
		panic(err)
	}
	return string(cert), string(key)
}
