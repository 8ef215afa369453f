//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// 真正的绑定入口在 mobile.go，需要 -tags mobile 和复制到本目录的 assets/。
package mobile

// Dummy 让 go build ./... 在桌面端也能通过
func Dummy() {}
