// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	left       key.Binding
	right      key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	pen        key.Binding
	rect       key.Binding
	circle     key.Binding
	text       key.Binding
	delete     key.Binding
	clear      key.Binding
	color      key.Binding
	background key.Binding
	copy       key.Binding
	save       key.Binding
	templates  key.Binding
	rooms      key.Binding
	info       key.Binding
	enter      key.Binding
	esc        key.Binding
	yes        key.Binding
	no         key.Binding
	quit       key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	left:       key.NewBinding(key.WithKeys("left", "h")),
	right:      key.NewBinding(key.WithKeys("right", "l")),
	moveUp:     key.NewBinding(key.WithKeys("shift+up", "K")),
	moveDown:   key.NewBinding(key.WithKeys("shift+down", "J")),
	moveLeft:   key.NewBinding(key.WithKeys("shift+left", "H")),
	moveRight:  key.NewBinding(key.WithKeys("shift+right", "L")),
	pen:        key.NewBinding(key.WithKeys(" ")),
	rect:       key.NewBinding(key.WithKeys("r")),
	circle:     key.NewBinding(key.WithKeys("o")),
	text:       key.NewBinding(key.WithKeys("t")),
	delete:     key.NewBinding(key.WithKeys("x", "delete")),
	clear:      key.NewBinding(key.WithKeys("X")),
	color:      key.NewBinding(key.WithKeys("c")),
	background: key.NewBinding(key.WithKeys("b")),
	copy:       key.NewBinding(key.WithKeys("y")),
	save:       key.NewBinding(key.WithKeys("s")),
	templates:  key.NewBinding(key.WithKeys("p")),
	rooms:      key.NewBinding(key.WithKeys("R")),
	info:       key.NewBinding(key.WithKeys("v")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

const drawHelp = "arrows move  space pen  r rect  o circle  t text  x delete  X clear  c colour  b background  " +
	"shift+arrows drag  y copy  s save  p templates  R rooms  v info  q quit"
