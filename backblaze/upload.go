// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package backblaze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/kothar/go-backblaze"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var (
	ErrBucketNotFound = errors.New("bucket not found")
	ErrNotConfigured  = errors.New("backblaze credentials are not configured")
)

// Enabled reports whether credentials and a bucket are configured
func Enabled() bool {
	return viper.GetString("backblaze.application_id") != "" &&
		viper.GetString("backblaze.application_key") != "" &&
		viper.GetString("backblaze.bucket") != ""
}

// RemoteName is the object name of fn under dirname
func RemoteName(dirname, fn string) string {
	return path.Join(dirname, filepath.Base(fn))
}

// Upload sends every file to the configured bucket under dirname
func Upload(ctx context.Context, files []string, dirname string) error {
	if !Enabled() {
		return ErrNotConfigured
	}

	bucketName := viper.GetString("backblaze.bucket")
	logger := zerolog.Ctx(ctx).With().Str("BucketName", bucketName).Logger()

	b2, err := backblaze.NewB2(backblaze.Credentials{
		KeyID:          viper.GetString("backblaze.application_id"),
		ApplicationKey: viper.GetString("backblaze.application_key"),
	})
	if err != nil {
		logger.Error().Err(err).Msg("authorize backblaze failed")
		return err
	}

	bucket, err := b2.Bucket(bucketName)
	if err != nil {
		logger.Error().Err(err).Msg("lookup bucket failed")
		return err
	}

	if bucket == nil {
		logger.Error().Msg("bucket does not exist")
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketName)
	}

	for _, fn := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := uploadFile(logger, bucket, fn, dirname); err != nil {
			return err
		}
	}

	return nil
}

func uploadFile(logger zerolog.Logger, bucket *backblaze.Bucket, fn, dirname string) error {
	reader, err := os.Open(fn)
	if err != nil {
		logger.Error().Err(err).Str("FileName", fn).Msg("open file for upload failed")
		return err
	}
	defer reader.Close()

	outName := RemoteName(dirname, fn)
	metadata := make(map[string]string)

	file, err := bucket.UploadFile(outName, metadata, reader)
	if err != nil {
		logger.Error().Err(err).Str("FileName", outName).Msg("save file to backblaze failed")
		return err
	}

	logger.Info().Str("FileName", file.Name).Int64("Size", file.ContentLength).Str("ID", file.ID).Msg("uploaded file to backblaze")
	return nil
}
