// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch watches path (defaulting to DefaultFileName) and invokes onChange
// with the freshly decoded File every time it is written or created. A
// change whose file fails to decode is skipped, and errors reported by
// the underlying watcher are ignored; it runs until the returned stop
// func closes the watcher.
func Watch(path string, onChange func(*File)) (stop func() error, err error) {
	if path == "" {
		path = DefaultFileName
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: starting watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config: watching %s: %w", path, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				f, err := loadFile(path)
				if err != nil {
					continue
				}
				onChange(f)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
