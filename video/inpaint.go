package video

// DefaultInpaint pins the first frame of the video to the whole source image.
func DefaultInpaint(img *Image) []InpaintItem {
	bounds := FullFrame
	return []InpaintItem{{
		FrameIndex: 0,
		Type:       "image",
		FileName:   img.Name,
		CropBounds: &bounds,
	}}
}

var (
	_ Provider = (*AzureFoundryProvider)(nil)
	_ Provider = (*AzureSoraProvider)(nil)
	_ Provider = (*OpenAIProvider)(nil)
)
