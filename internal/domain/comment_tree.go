package domain

// CommentNode узел дерева комментариев: сам комментарий и его прямые ответы.
type CommentNode struct {
	Comment  Comment
	Children []CommentNode
}

// BuildCommentTree собирает лес комментариев из плоского списка.
//
// Алгоритм работы:
//  1. Комментарии без родителя становятся корнями, остальные группируются
//     по ParentID.
//  2. Для каждого корня рекурсивно подвешиваются его ответы.
//  3. Относительный порядок входного списка сохраняется и для корней,
//     и для ответов внутри одного родителя.
//
// Комментарий, чей ParentID отсутствует во входном списке, в лес не попадает.
func BuildCommentTree(comments []Comment) []CommentNode {
	var roots []Comment
	childrenOf := make(map[int64][]Comment)

	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
	}

	var forest = make([]CommentNode, len(roots))
	for i, root := range roots {
		forest[i] = buildCommentNode(root, childrenOf)
	}
	return forest
}

// buildCommentNode рекурсия завершается, так как ответы создаются только на уже
// существующие комментарии и цикл по ParentID построить нельзя.
func buildCommentNode(c Comment, childrenOf map[int64][]Comment) CommentNode {
	replies := childrenOf[c.ID]
	node := CommentNode{Comment: c}
	if len(replies) == 0 {
		return node
	}
	node.Children = make([]CommentNode, len(replies))
	for i, reply := range replies {
		node.Children[i] = buildCommentNode(reply, childrenOf)
	}
	return node
}

// CommentSubtreeIDs возвращает id всех потомков комментария rootID (включая его
// самого) в списке comments. Используется при каскадном удалении ветки.
func CommentSubtreeIDs(rootID int64, comments []Comment) []int64 {
	childrenOf := make(map[int64][]int64)
	for _, c := range comments {
		if c.ParentID != nil {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c.ID)
		}
	}

	ids := []int64{rootID}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, childrenOf[ids[i]]...)
	}
	return ids
}
