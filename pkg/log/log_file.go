// Copyright 2026 Antrea Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

const (
	logToStdErrFlag = "logtostderr"
	logDirFlag      = "log_dir"
	logFileFlag     = "log_file"
	maxSizeFlag     = "log_file_max_size"
	maxNumFlag      = "log_file_max_num"

	// Allowed maximum value for the maximum file size limit.
	maxMaxSizeMB = 1024 * 100
)

var (
	maxNumArg     = uint16(0)
	logFileMaxNum = uint16(0)
	logDir        = ""

	executableName = filepath.Base(os.Args[0])

	logFs = afero.NewOsFs()
)

// InitLogFileLimits initializes log file maximum size and maximum number limits based on the
// command line flags.
func InitLogFileLimits(fs *pflag.FlagSet) {
	logToStdErr, err := fs.GetBool(logToStdErrFlag)
	if err != nil {
		// Should not happen. Return for safety.
		return
	}
	logFile, err := fs.GetString(logFileFlag)
	if err != nil {
		return
	}
	maxSize, err := fs.GetUint64(maxSizeFlag)
	if err != nil {
		return
	}
	logDir, err = fs.GetString(logDirFlag)
	if err != nil {
		return
	}

	if logToStdErr {
		// Logging to files is not enabled.
		return
	}
	if logFile != "" {
		// Log to a single file. klog will take care of the max size limit.
		return
	}

	if maxSize > maxMaxSizeMB {
		klog.Errorf("The specified log file max size %d is too big (maximum: %d), ignored", maxSize, maxMaxSizeMB)
	} else {
		maxSize = maxSize * 1024 * 1024
		// klog does not respect the max file size specified by --log_file_max_size
		// when --log_file is not used. Here as a workaround, we directly set the
		// specified max size to klog.MaxSize.
		if klog.MaxSize != maxSize {
			klog.MaxSize = maxSize
			klog.V(2).Infof("Set log file max size to %d", maxSize)
		}
	}

	if maxNumArg > 0 {
		logFileMaxNum = maxNumArg
		if logDir == "" {
			// Log to the tmp dir.
			logDir = os.TempDir()
			fs.Set(logDirFlag, logDir)
		}
	}
}

// PruneLogFiles removes the oldest log files of each severity level so that
// at most the configured maximum number is kept. Every invocation of the
// program creates new log files, so this runs once at startup.
func PruneLogFiles() {
	if logFileMaxNum == 0 {
		// The maximum log file number limit is not configured.
		return
	}
	allFiles, err := afero.ReadDir(logFs, logDir)
	if err != nil {
		klog.Errorf("Failed to read log directory %s: %v", logDir, err)
		return
	}

	maxNum := int(logFileMaxNum)
	if len(allFiles) <= maxNum {
		return
	}

	filesBySeverity := map[string][]os.FileInfo{}
	for _, file := range allFiles {
		if !file.Mode().IsRegular() {
			// Skip dir, symbol link, etc.
			continue
		}
		if !strings.HasPrefix(file.Name(), executableName) {
			continue
		}
		for _, severity := range []string{"INFO", "WARNING", "ERROR"} {
			if strings.Contains(file.Name(), ".log."+severity+".") {
				filesBySeverity[severity] = append(filesBySeverity[severity], file)
				break
			}
		}
	}

	for _, files := range filesBySeverity {
		if len(files) <= maxNum {
			continue
		}
		// Sort files by modification time, newest first.
		sort.Slice(files, func(i, j int) bool {
			return files[i].ModTime().After(files[j].ModTime())
		})
		for _, file := range files[maxNum:] {
			if err := logFs.Remove(filepath.Join(logDir, file.Name())); err != nil {
				klog.Errorf("Failed to delete log file %s: %v", file.Name(), err)
			} else {
				klog.V(2).Infof("Deleted log file %s", file.Name())
			}
		}
	}
}
