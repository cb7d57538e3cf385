package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSaveJSON(t *testing.T) {
	Convey("SaveJSON creates directories and writes readable JSON", t, func() {
		path := filepath.Join(t.TempDir(), "nested", "out.json")
		err := SaveJSON(path, map[string]int{"episodes": 10})
		So(err, ShouldBeNil)

		bs, err := os.ReadFile(path)
		So(err, ShouldBeNil)

		var out map[string]int
		So(json.Unmarshal(bs, &out), ShouldBeNil)
		So(out["episodes"], ShouldEqual, 10)
	})
}
