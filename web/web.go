// Package web 内嵌站点内容、模板与静态资源。
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed content template static
var files embed.FS

// Content 返回内嵌的内容目录：practice.yaml、base/ 与 pages/。
func Content() fs.FS {
	return sub("content")
}

// Templates 返回 html/template 模板源文件。
func Templates() fs.FS {
	return sub("template")
}

// Static 返回 /static 下提供的 css、js 与图片。
func Static() fs.FS {
	return sub("static")
}

// ContentFrom 设置了 dir 时从磁盘读取内容，否则使用内嵌目录。
func ContentFrom(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return Content()
}

// StaticFrom 设置了 dir 时从磁盘读取静态资源，否则使用内嵌资源。
func StaticFrom(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return Static()
}

func sub(dir string) fs.FS {
	fsys, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return fsys
}
