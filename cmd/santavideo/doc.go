/*
santavideo 是 Santa Video Generator 的命令行入口。

它加载配置、选择视频 Provider，然后执行一次顺序的
提交、轮询、下载流程，把结果保存为 santa_video_<时间戳>.mp4。

失败时打印对应的错误提示并以退出码 1 结束。
*/
package main
