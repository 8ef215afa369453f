package components

// AnchorComponent 锚点文字
// 彩纸爆发以其包围盒中心为原点；渲染适配器负责绘制文字
type AnchorComponent struct {
	Text     string
	FontSize float64
	CenterX  float64
	CenterY  float64
	Width    float64 // 估算的包围盒尺寸（像素）
	Height   float64
}
