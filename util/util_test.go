package util

import (
	"os"
	"testing"

	"github.com/aceplay/aceplay/filesystem"
	"github.com/spf13/afero"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a directory with a file in the virtual filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/cache/aceplay", os.ModePerm), ShouldBeNil)
		So(afero.WriteFile(fs, "/cache/aceplay/version.json", []byte("{}"), os.ModePerm), ShouldBeNil)

		Convey("Deleting the file removes only the file", func() {
			So(Delete("/cache/aceplay/version.json"), ShouldBeNil)
			exists, _ := afero.Exists(fs, "/cache/aceplay/version.json")
			So(exists, ShouldBeFalse)
			exists, _ = afero.DirExists(fs, "/cache/aceplay")
			So(exists, ShouldBeTrue)
		})

		Convey("Deleting the directory removes everything under it", func() {
			So(Delete("/cache/aceplay"), ShouldBeNil)
			exists, _ := afero.DirExists(fs, "/cache/aceplay")
			So(exists, ShouldBeFalse)
		})

		Convey("Deleting a missing path reports it", func() {
			So(Delete("/nowhere"), ShouldNotBeNil)
		})
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		item := s.Pop()
		So(item, ShouldEqual, 2)
		item = s.Pop()
		So(item, ShouldEqual, 1)
		item = s.Pop()
		So(item, ShouldEqual, 0)
	})
}
